// Package services defines shared utilities consumed by the workflow step
// handlers and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, step names, and preset identifiers
//     for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     consistently (validation vs timeout vs external tool).
//
// Use these helpers when wiring new step logic so operational behaviour stays
// uniform across the pipeline.
package services
