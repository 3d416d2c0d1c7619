// Package assignment contains the delivery-assignment ledger: one aggregate per
// broadcast offer, tracking the candidate set, the single winning rider, and the
// terminal outcome (completed, cancelled, or expired).
package assignment
