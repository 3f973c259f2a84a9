// Package config defines the application's configuration structure and the
// loader that populates it from environment variables and optional config
// files, validating the result before the server starts.
package config
