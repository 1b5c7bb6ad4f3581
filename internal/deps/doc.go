// Package deps inventories the external binaries the pipeline depends on and
// reports their availability for the deps command and preflight checks.
package deps
