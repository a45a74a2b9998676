// Package history persists batch conversion runs in a local SQLite database
// so failures remain inspectable after the process exits.
package history
