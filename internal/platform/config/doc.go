// Package config loads service configuration from the environment.
//
// A .env file in the working directory is read first (godotenv) and the
// resulting environment is mapped onto Config through go-simpler/env struct
// tags. Load validates driver-specific requirements before returning.
package config
