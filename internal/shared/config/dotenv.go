package config

import "github.com/subosito/gotenv"

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already set in the environment win. Missing files are ignored.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		_ = gotenv.Load(path)
	}
}
