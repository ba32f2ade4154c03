package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/monohq/mono/internal/config"
	"github.com/monohq/mono/internal/db"
	"github.com/monohq/mono/internal/markdown"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/service"
	"github.com/monohq/mono/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	AuthService    *service.AuthService
	UserService    *service.UserService
	SectionService *service.SectionService
	FileService    *service.FileService
	ShareService   *service.ShareService
	BackupService  *service.BackupService
	APIKeyService  *service.APIKeyService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	sectionRepository := repository.NewSectionRepository(database)
	fileRepository := repository.NewFileRepository(database)
	backupRepository := repository.NewBackupRepository(database)
	apiKeyRepository := repository.NewAPIKeyRepository(database)

	// Optional S3 archive for backups
	var archive storage.Storage
	if cfg.ArchiveEnabled() {
		archive, err = storage.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %v", err)
		}
	}

	// Services
	authService := service.NewAuthService(
		userRepository,
		cfg.JWTSecret,
		cfg.AccessTokenExpiry,
		cfg.RefreshTokenExpiry,
		cfg.IsProduction(),
	)
	userService := service.NewUserService(userRepository, authService)
	sectionService := service.NewSectionService(sectionRepository, fileRepository)
	fileService := service.NewFileService(fileRepository, sectionRepository, markdown.NewRenderer())
	shareService := service.NewShareService(fileRepository, sectionRepository)
	backupService := service.NewBackupService(backupRepository, archive)
	apiKeyService := service.NewAPIKeyService(apiKeyRepository, cfg.DefaultAPIKey)

	return &App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    authService,
		UserService:    userService,
		SectionService: sectionService,
		FileService:    fileService,
		ShareService:   shareService,
		BackupService:  backupService,
		APIKeyService:  apiKeyService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
