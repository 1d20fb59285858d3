package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotenvFiles are checked in order. godotenv never overwrites variables
// that are already set, so the process environment wins over .env.local,
// which wins over .env.
var dotenvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads whichever dotenv files exist and reports which were read.
func LoadDotEnv() []string {
	var found []string
	for _, name := range dotenvFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		found = append(found, name)
	}
	if len(found) == 0 {
		return nil
	}
	_ = godotenv.Load(found...)
	return found
}
