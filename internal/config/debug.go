package config

import "os"

// IsDebug reads the environment directly so debug logging can switch on
// before any config struct is parsed.
func IsDebug() bool {
	return os.Getenv("SANI_DEBUG") == "1"
}
