package invariant

import "testing"

func TestCheck(t *testing.T) {
	if !Check(true, "never") {
		t.Fatalf("true condition reported false")
	}
	if Enabled {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic under farmdebug")
			}
		}()
	}
	if Check(false, "count=%d", -1) {
		t.Fatalf("false condition reported true")
	}
}
