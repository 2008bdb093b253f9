package models

import "time"

// Session is a maximal run of messages whose consecutive timestamp gaps
// stay below the configured inactivity threshold. Sessions are derived
// during output, never persisted.
type Session struct {
	Messages []Message
}

// Start returns the timestamp of the first message in the session.
func (s Session) Start() time.Time {
	if len(s.Messages) == 0 {
		return time.Time{}
	}
	return s.Messages[0].Timestamp
}

// Day groups the sessions whose first message falls on one calendar
// date in the render zone.
type Day struct {
	Date     time.Time // midnight in the render zone
	Sessions []Session
}
