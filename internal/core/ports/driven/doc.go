// Package driven defines the interfaces the pipeline core depends on:
// fetching, snapshot cataloguing, Silver persistence and parsing.
// Adapters implement these; services consume them.
package driven
