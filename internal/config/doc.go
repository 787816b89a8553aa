// Package config loads superlist's configuration file.
//
// Configuration lives at ~/.config/superlist/config.toml and covers the
// server URL, request timeout, automatic fetch retry count, the credential
// store directory, and the cadence of the background collection refresher.
// A missing file is not an error: every field has a usable default so the
// client can run against the production server with no setup at all.
package config
