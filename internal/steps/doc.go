// Package steps implements the pipeline step handlers and assembles them
// into registrable definitions with their timeouts, criticality, and
// dependency declarations.
package steps
