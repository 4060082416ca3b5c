package localtime

import (
	"errors"
	"fmt"
	"time"

	// Embeds the IANA database so zone rules do not depend on the host.
	_ "time/tzdata"
)

// DefaultZone is the zone every statistic is computed in.
const DefaultZone = "Europe/Zurich"

// ErrUnsupportedTimezone is returned for any zone other than DefaultZone.
var ErrUnsupportedTimezone = errors.New("unsupported timezone")

var weekdayLabels = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Mapper converts UTC instants to local calendar facts in a single zone.
type Mapper struct {
	zoneID string
	loc    *time.Location
}

// NewMapper resolves zoneID. Only DefaultZone is implemented.
func NewMapper(zoneID string) (*Mapper, error) {
	if zoneID != DefaultZone {
		return nil, fmt.Errorf("%w: %q (only %s is implemented)", ErrUnsupportedTimezone, zoneID, DefaultZone)
	}

	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", zoneID, err)
	}

	return &Mapper{zoneID: zoneID, loc: loc}, nil
}

// NewMapperForLocation builds a mapper around an already resolved location.
func NewMapperForLocation(loc *time.Location) *Mapper {
	return &Mapper{zoneID: loc.String(), loc: loc}
}

// Zone returns the zone label reported alongside statistics.
func (m *Mapper) Zone() string {
	return m.zoneID
}

// ToLocal converts a UTC instant to wall-clock time in the mapper's zone.
func (m *Mapper) ToLocal(utc time.Time) time.Time {
	return utc.In(m.loc)
}

// BookingDate returns the local calendar date of a UTC instant.
func (m *Mapper) BookingDate(utc time.Time) time.Time {
	return DateOf(m.ToLocal(utc))
}

// Weekday returns the local ISO weekday of a UTC instant, Monday=1 through Sunday=7.
func (m *Mapper) Weekday(utc time.Time) int {
	wd := int(m.ToLocal(utc).Weekday())
	if wd == int(time.Sunday) {
		return 7
	}
	return wd
}

// DaysToDeparture is the number of calendar days between the local booking
// date of observedUTC and the calendar day of departure. It is negative for
// observations made after the departure day.
func (m *Mapper) DaysToDeparture(observedUTC, departure time.Time) int {
	return DayNumber(departure) - DayNumber(m.BookingDate(observedUTC))
}

// WeekdayLabel maps 1..7 to Mon..Sun and anything else to "".
func WeekdayLabel(weekday int) string {
	if weekday < 1 || weekday > 7 {
		return ""
	}
	return weekdayLabels[weekday-1]
}
