package routes

import (
	"net/http"

	"github.com/monohq/mono/internal/app"
	"github.com/monohq/mono/internal/handler"
	"github.com/monohq/mono/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService)
	section := handler.NewSectionHandler(app.SectionService)
	file := handler.NewFileHandler(app.FileService)
	share := handler.NewShareHandler(app.ShareService)
	backup := handler.NewBackupHandler(app.BackupService)

	mux := http.NewServeMux()

	// Auth (rate limited on the credential paths)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("POST /auth/sign-up", rateLimiter(auth.SignUp))
	mux.HandleFunc("POST /auth/sign-in", rateLimiter(auth.SignIn))
	mux.HandleFunc("POST /auth/refresh", rateLimiter(auth.Refresh))
	mux.HandleFunc("POST /auth/sign-out", middleware.RequireAuth(auth.SignOut))

	// Users
	mux.HandleFunc("GET /user", middleware.RequireAuth(user.List))
	mux.HandleFunc("GET /user/{id}", middleware.RequireAuth(user.Get))
	mux.HandleFunc("PATCH /user/{id}", middleware.RequireAuth(user.Update))

	// Sections. Listing and reading work anonymously and show only public
	// rows; a signed-in caller additionally sees their own private rows.
	mux.HandleFunc("GET /section", section.List)
	mux.HandleFunc("GET /section/self", middleware.RequireAuth(section.ListOwn))
	mux.HandleFunc("GET /section/{id}/files", section.Files)
	mux.HandleFunc("PUT /section", middleware.RequireAuth(section.Create))
	mux.HandleFunc("PATCH /section/{name}", middleware.RequireAuth(section.Update))
	mux.HandleFunc("DELETE /section/{name}", middleware.RequireAuth(section.Delete))

	// Files
	mux.HandleFunc("GET /file", file.List)
	mux.HandleFunc("GET /file/{id}", file.Get)
	mux.HandleFunc("GET /file/{id}/render", file.Render)
	mux.HandleFunc("PUT /file", middleware.RequireAuth(file.Create))
	mux.HandleFunc("POST /file/unshare/{id}", middleware.RequireAuth(file.Unshare))
	mux.HandleFunc("PATCH /file/{id}", middleware.RequireAuth(file.Update))
	mux.HandleFunc("DELETE /file/{id}", middleware.RequireAuth(file.Delete))

	// Sharing
	mux.HandleFunc("POST /share/single", middleware.RequireAuth(share.Single))
	mux.HandleFunc("POST /share/multiple", middleware.RequireAuth(share.Multiple))

	// Backups. The by-id and by-user reads sit behind the API key gate only,
	// serving service-to-service restore tooling.
	mux.HandleFunc("GET /backup", middleware.RequireAuth(backup.ListOwn))
	mux.HandleFunc("GET /backup/{id}", backup.Get)
	mux.HandleFunc("GET /backup/user/{userId}", backup.ListByUser)
	mux.HandleFunc("PUT /backup", middleware.RequireAuth(backup.Create))
	mux.HandleFunc("DELETE /backup/{id}", middleware.RequireAuth(backup.Delete))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.APIKeyGate(app.APIKeyService),
		middleware.Auth(app.AuthService, app.UserService),
	)
}
