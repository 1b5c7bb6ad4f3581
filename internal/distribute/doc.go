// Package distribute fans finished videos out to upload destinations with
// bounded concurrency, isolated failures, and ordered outcome reporting.
package distribute
