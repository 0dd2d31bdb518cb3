// Package config loads fuzzysem settings from an optional YAML file, FUZZYSEM_*
// environment variables and command line flags, in increasing precedence.
package config
