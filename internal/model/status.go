package model

import "fmt"

type Status string

const (
	StatusWIP      Status = "WIP"
	StatusLive     Status = "Live"
	StatusArchived Status = "Archived"
)

var validStatuses = []Status{StatusWIP, StatusLive, StatusArchived}

// Statuses returns the accepted project statuses in display order.
func Statuses() []Status {
	return append([]Status(nil), validStatuses...)
}

func ValidateStatus(s Status) error {
	for _, v := range validStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid status %q: must be one of WIP, Live, Archived", s)
}
