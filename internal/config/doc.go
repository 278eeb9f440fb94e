// Package config loads and validates the application configuration from a
// config.yaml file and CINEMA_-prefixed environment variables, with the
// environment taking precedence. The rest of the application receives a
// validated Config value and never touches viper directly.
package config
