// Package repositories implements SQLite persistence for collection runs.
//
// Key Implementations:
//   - [RunRepository] : runs and the tracks each one found
//   - [RunRecorder] : adapter the CLI and HTTP handler report finished collections to
//
// Sequence numbers provide stable, human-readable ordering (run #1, run #2) independent of UUIDs and timestamps.
// [NextSequence] advances the counter inside the insert transaction.
package repositories
