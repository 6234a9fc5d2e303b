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
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
)

type Config struct {
	DbConfig   config.DatabaseConfig
	AppConfig  app.AppConfig
	JwtConfig  config.JwtConfig
	SeedConfig config.SeedConfig
}

func main() {
	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := cfg.DbConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	roleRepo := role.NewPostgresRoleRepository(pool)
	userRepo := user.NewPostgresUserRepository(pool)

	hasher := login.NewBcryptHasher()
	roleService := role.NewRoleService(roleRepo)
	userService := user.NewUserService(userRepo, roleRepo, hasher)
	loginService := login.NewLoginService(user.NewIdentityAdapter(userService), hasher)

	if err := bootstrap.Seed(context.Background(), roleService, userService, cfg.SeedConfig); err != nil {
		slog.Error("Failed seeding baseline data", "err", err)
		os.Exit(-1)
	}

	jwtService := auth.NewJwtServiceOptions(
		cfg.JwtConfig.Secret,
		auth.WithCookieHttpOnly(cfg.JwtConfig.CookieHttpOnly),
		auth.WithCookieSecure(cfg.JwtConfig.CookieSecure),
	)

	loginHandle := loginapi.NewHandle(loginService, userService, jwtService)
	userHandle := userapi.NewHandle(userService)
	roleHandle := roleapi.NewHandle(roleService)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.Secret), nil)

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

	server.Run()
}
