// Package config loads typed configuration structs from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for optional .env files. Every struct type is parsed
// once and cached, so packages can call Load for the same type without paying
// for repeated parsing. Any field type implementing encoding.TextUnmarshaler
// works, including useragent.UserAgent and slog.Level.
//
//	var cfg struct {
//		Env string `env:"APP_ENV" envDefault:"development"`
//	}
//	config.MustLoad(&cfg)
package config
