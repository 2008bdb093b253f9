// Package session derives session and day groupings from an ordered
// message sequence. All functions are pure: the same input always
// produces the same grouping.
package session

import (
	"time"

	"github.com/gsakkis/ViberExtractor/internal/models"
)

// Split cuts the time-ordered messages into sessions, starting a new
// session whenever the gap between consecutive messages reaches gap.
// A non-positive gap disables splitting and yields a single session.
func Split(msgs []models.Message, gap time.Duration) []models.Session {
	if len(msgs) == 0 {
		return nil
	}
	if gap <= 0 {
		return []models.Session{{Messages: msgs}}
	}

	var sessions []models.Session
	start := 0
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Sub(msgs[i-1].Timestamp) >= gap {
			sessions = append(sessions, models.Session{Messages: msgs[start:i]})
			start = i
		}
	}
	return append(sessions, models.Session{Messages: msgs[start:]})
}

// GroupByDay buckets messages into days in the given zone. With a
// positive gap the sessions are computed first and each session lands
// on the date of its first message; without a gap each day holds one
// session covering that day's messages.
func GroupByDay(msgs []models.Message, gap time.Duration, loc *time.Location) []models.Day {
	if len(msgs) == 0 {
		return nil
	}
	if gap <= 0 {
		return groupMessagesByDate(msgs, loc)
	}

	var days []models.Day
	for _, sess := range Split(msgs, gap) {
		date := dateOf(sess.Start(), loc)
		if n := len(days); n > 0 && days[n-1].Date.Equal(date) {
			days[n-1].Sessions = append(days[n-1].Sessions, sess)
			continue
		}
		days = append(days, models.Day{Date: date, Sessions: []models.Session{sess}})
	}
	return days
}

func groupMessagesByDate(msgs []models.Message, loc *time.Location) []models.Day {
	var days []models.Day
	start := 0
	date := dateOf(msgs[0].Timestamp, loc)
	for i := 1; i < len(msgs); i++ {
		d := dateOf(msgs[i].Timestamp, loc)
		if d.Equal(date) {
			continue
		}
		days = append(days, models.Day{Date: date, Sessions: []models.Session{{Messages: msgs[start:i]}}})
		start, date = i, d
	}
	return append(days, models.Day{Date: date, Sessions: []models.Session{{Messages: msgs[start:]}}})
}

func dateOf(ts time.Time, loc *time.Location) time.Time {
	y, m, d := ts.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
