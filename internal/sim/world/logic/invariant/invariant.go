// Package invariant reports states that the simulation rules should make
// unreachable. Builds tagged farmdebug panic; release builds return false so
// callers can reject the operation with E_INTERNAL.
package invariant

import "fmt"

// Check returns cond. When cond is false it panics under farmdebug.
func Check(cond bool, format string, args ...any) bool {
	if !cond {
		fail(fmt.Sprintf(format, args...))
	}
	return cond
}
