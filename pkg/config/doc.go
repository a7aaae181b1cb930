// Package config loads client configuration from environment variables
// and optional YAML profile files.
//
// Environment loading wraps github.com/joho/godotenv and
// github.com/caarlos0/env/v11: Load parses `env`-tagged structs after
// picking up a default .env file, and LoadEnv pulls in named env files
// with later files winning.
//
// Profile files describe a named backend target (base URL, route paths,
// per-channel timeouts) in YAML and are decoded strictly with
// LoadProfile, so unknown keys are rejected.
package config
