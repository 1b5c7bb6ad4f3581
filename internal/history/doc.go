// Package history persists run and step outcomes in SQLite for the history
// command.
package history
