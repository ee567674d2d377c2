// Package testutil holds deterministic clocks, id generators and entity
// fixtures shared by the store tests.
package testutil
