// Package scheduling holds the pure consistency rules of the home-care
// engine: interval algebra for daily time windows, availability resolution,
// conflict detection, the appointment state machines, and notification
// trigger derivation. Nothing in this package performs I/O; the application
// layer feeds it snapshots read from persistence and applies its verdicts
// inside a transaction.
package scheduling
