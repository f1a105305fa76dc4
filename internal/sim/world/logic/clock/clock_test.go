package clock

import "testing"

func TestAdvanceWrapsDayAndSeason(t *testing.T) {
	c := New(23.5, 1, 10)
	if c.Advance(0.25) {
		t.Fatalf("day changed early")
	}
	if !c.Advance(0.25) || c.Hour != 0 || c.Day != 2 {
		t.Fatalf("after wrap: hour=%v day=%d", c.Hour, c.Day)
	}
	for c.Day < 10 {
		c.Advance(24)
	}
	if c.Season != Summer {
		t.Fatalf("season=%s at day %d", c.Season, c.Day)
	}
	if got := c.DayString(); got != "Summer 1" {
		t.Fatalf("DayString=%q", got)
	}
}

func TestTimeString(t *testing.T) {
	cases := map[float64]string{
		0:     "12:00 AM",
		6:     "6:00 AM",
		12.5:  "12:30 PM",
		18.25: "6:15 PM",
	}
	for h, want := range cases {
		c := New(h, 0, 10)
		if got := c.TimeString(); got != want {
			t.Fatalf("hour %v: got %q want %q", h, got, want)
		}
	}
}

func TestIsNight(t *testing.T) {
	for h, want := range map[float64]bool{5.9: true, 6: false, 17.9: false, 18: true, 23: true} {
		if got := New(h, 0, 10).IsNight(); got != want {
			t.Fatalf("hour %v night=%v", h, got)
		}
	}
}

func TestRestore(t *testing.T) {
	c := New(6, 0.001, 10)
	if err := c.Restore(13, 14, "Fall"); err != nil || c.Season != Fall || c.Day != 14 {
		t.Fatalf("restore: %v %+v", err, c)
	}
	if err := c.Restore(25, 1, "Fall"); err == nil {
		t.Fatalf("expected out of range hour rejected")
	}
	if err := c.Restore(1, 1, "Monsoon"); err == nil {
		t.Fatalf("expected unknown season rejected")
	}
}
