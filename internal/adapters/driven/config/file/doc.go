// Package file implements TOML-backed configuration for the pipeline.
package file
