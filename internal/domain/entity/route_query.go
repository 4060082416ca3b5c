package entity

import (
	"time"
)

// RouteQuery is a saved route search: an anchor departure date plus the
// number of days the traveller can shift in either direction.
type RouteQuery struct {
	ID              uint
	OriginIata      string
	DestinationIata string
	AnchorDate      time.Time
	FlexibilityDays int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
