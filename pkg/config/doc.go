// Package config holds the env-driven configuration shared by the server
// binaries. Values are read with cleanenv from env tags.
package config
