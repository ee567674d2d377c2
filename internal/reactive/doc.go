// Package reactive implements the snapshot-publishing container behind every
// Volt state store.
//
// A Store holds exactly one immutable snapshot. Mutators take the current
// snapshot, build a new one and swap it in; subscribers are then handed the
// new snapshot. Snapshots are never modified in place, so a subscriber may
// keep a reference to an old snapshot for as long as it likes.
//
// ARCHITECTURE:
//
// Single-Writer Mutation:
// Each mutator runs to completion under the store lock, so two mutators never
// interleave. Mutators must be synchronous and must not block on I/O; network
// fetches happen outside the store and push their results in afterwards.
//
// Publication:
// Subscribers are invoked after the lock is released, in registration order.
// Every publication carries a version; a subscriber is never handed a
// snapshot older than one it has already seen, so a slow delivery that lost
// a race with a newer mutation is dropped for that subscriber.
// A mutation that reports no change (Mutate returning false) publishes
// nothing and leaves the exact same snapshot in place.
//
// Read-then-fetch-then-write races between independent callers resolve as
// last writer wins. The store provides no cancellation for superseded writes.
package reactive
