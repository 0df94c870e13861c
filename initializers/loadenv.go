package initializers

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped; it reports
// whether any file was loaded.
func LoadEnv(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	loaded := false
	for _, file := range files {
		err := godotenv.Load(file) // using the joho library to load variables from the .env file
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", file, err)
		}
		loaded = true
	}
	return loaded, nil
}
