package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFiles lists the environment files LoadDotEnv looks for, in order.
var DotEnvFiles = []string{".env", ".env.local"}

// LoadDotEnv loads the first environment file found in DotEnvFiles. Existing
// process variables are never overridden. It returns the file that was loaded,
// or "" when none exists.
func LoadDotEnv() (string, error) {
	for _, path := range DotEnvFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", nil
}
