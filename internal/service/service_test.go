package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/monohq/mono/internal/db"
	"github.com/monohq/mono/internal/markdown"
	"github.com/monohq/mono/internal/repository"
)

type testEnv struct {
	db       *sqlx.DB
	users    repository.UserRepository
	sections repository.SectionRepository
	files    repository.FileRepository
	backups  repository.BackupRepository
	apiKeys  repository.APIKeyRepository

	auth     *AuthService
	userSvc  *UserService
	section  *SectionService
	file     *FileService
	share    *ShareService
	backup   *BackupService
	apiKey   *APIKeyService
}

// newTestEnv wires services against a migrated in-memory database. A single
// connection keeps every query on the same in-memory instance.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	t.Cleanup(func() {
		_ = database.Close()
	})

	env := &testEnv{
		db:       database,
		users:    repository.NewUserRepository(database),
		sections: repository.NewSectionRepository(database),
		files:    repository.NewFileRepository(database),
		backups:  repository.NewBackupRepository(database),
		apiKeys:  repository.NewAPIKeyRepository(database),
	}

	env.auth = NewAuthService(env.users, "test-secret", 30*time.Minute, 168*time.Hour, false)
	env.userSvc = NewUserService(env.users, env.auth)
	env.section = NewSectionService(env.sections, env.files)
	env.file = NewFileService(env.files, env.sections, markdown.NewRenderer())
	env.share = NewShareService(env.files, env.sections)
	env.backup = NewBackupService(env.backups, nil)
	env.apiKey = NewAPIKeyService(env.apiKeys, "test-api-key")

	return env
}

func (env *testEnv) signUp(t *testing.T, email string) string {
	t.Helper()

	user, _, err := env.auth.SignUp(email, "tester", "password123")
	require.NoError(t, err)
	return user.ID
}

func fileInput(path, section string) *FileInput {
	return &FileInput{
		Filename: path + ".md",
		Path:     path,
		Section:  section,
		Text:     "# " + path,
		Type:     "text/markdown",
	}
}
