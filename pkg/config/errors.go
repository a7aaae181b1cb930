package config

import "errors"

var (
	// ErrParseEnv is returned when environment variables cannot be parsed
	// into the config struct.
	ErrParseEnv = errors.New("config.parse_env_failed")

	// ErrLoadEnvFile is returned when an explicitly named env file cannot
	// be read.
	ErrLoadEnvFile = errors.New("config.load_env_file_failed")

	// ErrLoadProfile is returned when a profile file cannot be read or
	// decoded.
	ErrLoadProfile = errors.New("config.load_profile_failed")

	// ErrNilPointer is returned when a nil destination is passed to a
	// loader.
	ErrNilPointer = errors.New("config.nil_pointer")
)
