// Package main runs the admin backend without a database using in-memory
// repositories. Useful for quick development and for trying the API without
// PostgreSQL. All data is lost when the server stops.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/adminkit/useradmin/pkg/auth"
	"github.com/adminkit/useradmin/pkg/bootstrap"
	"github.com/adminkit/useradmin/pkg/client"
	"github.com/adminkit/useradmin/pkg/config"
	"github.com/adminkit/useradmin/pkg/login"
	loginapi "github.com/adminkit/useradmin/pkg/login/api"
	"github.com/adminkit/useradmin/pkg/role"
	roleapi "github.com/adminkit/useradmin/pkg/role/api"
	"github.com/adminkit/useradmin/pkg/user"
	userapi "github.com/adminkit/useradmin/pkg/user/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tendant/chi-demo/app"
)

const jwtSecret = "inmem-dev-secret-change-in-production"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory admin backend (no database required)")

	roleRepo := role.NewInMemoryRoleRepository()
	userRepo := user.NewInMemoryUserRepository()

	hasher := login.NewBcryptHasher()
	roleService := role.NewRoleService(roleRepo)
	userService := user.NewUserService(userRepo, roleRepo, hasher)
	loginService := login.NewLoginService(user.NewIdentityAdapter(userService), hasher)

	seedCfg := config.SeedConfig{AdminPassword: "admin", UserPassword: "user"}
	if err := bootstrap.Seed(context.Background(), roleService, userService, seedCfg); err != nil {
		slog.Error("Failed seeding baseline data", "err", err)
		os.Exit(-1)
	}

	jwtService := auth.NewJwtServiceOptions(jwtSecret, auth.WithCookieHttpOnly(true))

	loginHandle := loginapi.NewHandle(loginService, userService, jwtService)
	userHandle := userapi.NewHandle(userService)
	roleHandle := roleapi.NewHandle(roleService)

	tokenAuth := jwtauth.New("HS256", []byte(jwtSecret), nil)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	server.R.Route("/api", func(r chi.Router) {
		loginHandle.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(client.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator(tokenAuth))
			r.Use(client.AuthUserMiddleware)

			loginHandle.RegisterAuthRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(client.RequireRole(role.RoleAdmin))
				userHandle.RegisterRoutes(r)
				roleHandle.RegisterRoutes(r)
			})
		})
	})

	slog.Info("Admin backend ready")
	slog.Info("Test credentials: admin/admin (ROLE_ADMIN), user/user (ROLE_USER)")
	slog.Info("Endpoints: POST /api/login, GET /api/current-user, GET /api/users, GET /api/roles")

	server.Run()
}
