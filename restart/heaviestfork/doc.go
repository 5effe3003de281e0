// Package heaviestfork implements the stake aggregation used during a
// coordinated cluster restart. Surviving validators broadcast the (slot,
// hash) pair their local fork choice considers heaviest, and the aggregator
// accumulates how much stake has spoken at all, alongside per-fork stake
// tallies. The restart coordinator compares the participating stake against
// its quorum threshold; this package takes no part in that decision.
//
// The aggregator is a monotonically growing accumulator for one restart
// attempt. It is not safe for concurrent use; the owner must serialize
// access.
package heaviestfork
