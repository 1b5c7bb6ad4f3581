// Package workflow contains the orchestration nucleus: the step registry,
// per-run execution context, timeout-enforcing step executor, and the manager
// that drives a preset's steps with critical/non-critical failure handling.
package workflow
