// Package sqlite implements the Bronze snapshot catalog on SQLite.
// Schema changes are applied through embedded, numbered migrations.
package sqlite
