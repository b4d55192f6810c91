// Package config loads application configuration from environment variables.
//
// It combines github.com/joho/godotenv (reading .env files) with
// github.com/caarlos0/env/v11 (parsing the environment into tagged structs)
// and caches each configuration type after the first successful Load.
//
// # Usage
//
//	type Config struct {
//		AppEnv   string `env:"APP_ENV" envDefault:"development"`
//		HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Call LoadEnv before the first Load to read additional or non-default .env
// files. Values already present in the environment take precedence over file
// values. ResetCache forces the next Load to parse again, which tests use
// after changing variables.
package config
