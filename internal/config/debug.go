package config

import "os"

func IsDebug() bool {
	return os.Getenv("WAYFARER_DEBUG") == "1"
}
