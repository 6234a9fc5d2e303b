package config

// SeedConfig holds passwords for the bootstrap accounts. Defaults are for
// local development only.
type SeedConfig struct {
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" env-default:"admin"`
	UserPassword  string `env:"SEED_USER_PASSWORD" env-default:"user"`
}
