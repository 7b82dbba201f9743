package instance

import "os"

// GetID returns the serving instance identifier or a local default.
func GetID() string {
	if id := os.Getenv("INVENTAIRE_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("HOSTNAME"); id != "" {
		return id
	}
	return "local"
}
