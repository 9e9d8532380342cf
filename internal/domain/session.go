package domain

import "time"

// Session is the unit of isolation for the order workflow. Every login
// produces one session, and each session holds at most one order under
// construction. A zero CurrentOrderID means no order is in progress.
type Session struct {
	Token          string
	UserID         int64
	CurrentOrderID int64
	CreatedAt      time.Time
}

func (s *Session) HasActiveOrder() bool {
	return s.CurrentOrderID != 0
}
