// Package mclock provides the millisecond wallclock used to timestamp fork
// claims on the wire.
package mclock

import "time"

// Now returns the current unix time in milliseconds.
func Now() uint64 {
	return uint64(time.Now().UnixMilli())
}
