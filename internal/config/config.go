// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config file
// and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// JWTSecret is the HMAC key used to sign session tokens.
	JWTSecret string `json:"jwt_secret"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `json:"log_level"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "s", "", "session token signing secret")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file and environment
// variables to set configuration values. Environment variables win over the
// file, the file wins over flag defaults. It returns a pointer to the Options
// struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
