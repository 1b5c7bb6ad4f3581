// Package preflight validates the environment before a workflow run starts:
// directory permissions and external binary availability.
package preflight
