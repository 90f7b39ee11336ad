// Package file implements the Bronze, Silver and Gold layers as plain
// files: raw bytes per source, JSON arrays per record type, and JSONL
// per training dataset. Everything is human-diffable by design.
package file
