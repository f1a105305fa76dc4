//go:build farmdebug

package invariant

const Enabled = true

func fail(msg string) {
	panic("invariant violated: " + msg)
}
