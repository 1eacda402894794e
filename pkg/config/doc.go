// Package config loads application settings from environment variables into
// tagged Go structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct using `env` field tags and
//     caches the result per type.
//   - ForceReload and ResetCache refresh cached values, which is handy in tests.
//   - MustLoad and MustLoadEnv panic on failure for settings the program
//     cannot start without.
//
// # Usage
//
//	type Settings struct {
//	    Definition string `env:"FSM_DEFINITION" envDefault:"fsm.yaml"`
//	    LogLevel   string `env:"FSM_LOG_LEVEL" envDefault:"info"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// Errors wrap the sentinels ErrParsingConfig, ErrLoadingEnvFile and
// ErrNilPointer and can be matched with errors.Is.
package config
