// Package history records the outcome of every reconciliation cycle in the
// cycle_records table so runs can be compared over time.
package history
