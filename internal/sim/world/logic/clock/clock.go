package clock

import "fmt"

type Season uint8

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

var seasonNames = [...]string{"Spring", "Summer", "Fall", "Winter"}

func (s Season) String() string {
	if int(s) >= len(seasonNames) {
		return "Unknown"
	}
	return seasonNames[s]
}

func (s Season) Next() Season { return Season((int(s) + 1) % len(seasonNames)) }

func ParseSeason(s string) (Season, bool) {
	for i, n := range seasonNames {
		if n == s {
			return Season(i), true
		}
	}
	return 0, false
}

const (
	NightStart = 18.0
	NightEnd   = 6.0
)

// Clock is the in-game calendar: an hour of day, a day counter and a season.
type Clock struct {
	Hour          float64
	Day           int
	Season        Season
	Speed         float64 // hours per dt unit
	DaysPerSeason int
}

func New(startHour, speed float64, daysPerSeason int) *Clock {
	if daysPerSeason <= 0 {
		daysPerSeason = 10
	}
	return &Clock{Hour: startHour, Day: 1, Season: Spring, Speed: speed, DaysPerSeason: daysPerSeason}
}

// Advance moves time forward by dt. It reports whether a new day started.
func (c *Clock) Advance(dt float64) bool {
	c.Hour += c.Speed * dt
	if c.Hour < 24 {
		return false
	}
	c.Hour = 0
	c.Day++
	if c.Day%c.DaysPerSeason == 0 {
		c.Season = c.Season.Next()
	}
	return true
}

func (c *Clock) IsNight() bool {
	return c.Hour >= NightStart || c.Hour < NightEnd
}

// TimeString renders a 12-hour clock, e.g. "6:00 AM".
func (c *Clock) TimeString() string {
	hour := int(c.Hour)
	minute := int((c.Hour - float64(hour)) * 60)
	period := "AM"
	h12 := hour
	switch {
	case hour == 0:
		h12 = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		h12 = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, period)
}

// DayString is the season with the day number inside it.
func (c *Clock) DayString() string {
	return fmt.Sprintf("%s %d", c.Season, c.Day%c.DaysPerSeason+1)
}

// Restore sets the calendar from saved values.
func (c *Clock) Restore(hour float64, day int, season string) error {
	if hour < 0 || hour >= 24 {
		return fmt.Errorf("time %v out of range", hour)
	}
	if day < 0 {
		return fmt.Errorf("negative day %d", day)
	}
	s, ok := ParseSeason(season)
	if !ok {
		return fmt.Errorf("unknown season %q", season)
	}
	c.Hour, c.Day, c.Season = hour, day, s
	return nil
}
