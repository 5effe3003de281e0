// Package primitives defines the core consensus value types shared across
// the repository: slots, node identity keys, and block hashes.
package primitives
