// Package config loads declarative logging configuration from TOML or
// YAML documents and turns it into a ready-to-activate logger.Builder.
//
// A minimal document routes one subsystem to a file and everything
// else to stderr:
//
//	level = "info"
//	capture_panics = true
//
//	[targets.api]
//	destination = "/var/log/api.log"
//	format = "json"
//	async = true
//	queue_size = 4096
//	policy = "drop_oldest"
//
// Load detects the format from the file extension; Parse takes the
// format explicitly. Unknown levels, formats, destinations, or
// overflow policies surface as logger.ConfigurationError at parse
// time, never at logging time.
package config
