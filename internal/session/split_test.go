package session

import (
	"reflect"
	"testing"
	"time"

	"github.com/gsakkis/ViberExtractor/internal/models"
)

func msgsAt(base time.Time, offsets ...time.Duration) []models.Message {
	msgs := make([]models.Message, len(offsets))
	for i, off := range offsets {
		msgs[i] = models.Message{EventID: int64(i + 1), Timestamp: base.Add(off)}
	}
	return msgs
}

func sessionLens(sessions []models.Session) []int {
	lens := make([]int, len(sessions))
	for i, s := range sessions {
		lens[i] = len(s.Messages)
	}
	return lens
}

func TestSplitByInactivityGap(t *testing.T) {
	base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)
	msgs := msgsAt(base, 0, 5*time.Minute, 40*time.Minute, 45*time.Minute)

	sessions := Split(msgs, 30*time.Minute)
	if got := sessionLens(sessions); !reflect.DeepEqual(got, []int{2, 2}) {
		t.Fatalf("expected sessions of [2 2] messages, got %v", got)
	}
	if sessions[1].Messages[0].EventID != 3 {
		t.Fatalf("second session should start at event 3, got %d", sessions[1].Messages[0].EventID)
	}
}

func TestSplitGapIsInclusive(t *testing.T) {
	base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)
	msgs := msgsAt(base, 0, 30*time.Minute)

	// A gap of exactly the threshold starts a new session.
	if got := sessionLens(Split(msgs, 30*time.Minute)); !reflect.DeepEqual(got, []int{1, 1}) {
		t.Fatalf("expected [1 1], got %v", got)
	}
	if got := sessionLens(Split(msgs, 30*time.Minute+time.Second)); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestSplitWithoutGap(t *testing.T) {
	base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)
	msgs := msgsAt(base, 0, 12*time.Hour, 72*time.Hour)

	if got := sessionLens(Split(msgs, 0)); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("expected a single session, got %v", got)
	}
}

func TestSplitEmpty(t *testing.T) {
	if got := Split(nil, 30*time.Minute); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestSplitDeterministic(t *testing.T) {
	base := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)
	msgs := msgsAt(base, 0, 10*time.Minute, 50*time.Minute, 51*time.Minute, 2*time.Hour)

	first := Split(msgs, 30*time.Minute)
	second := Split(msgs, 30*time.Minute)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("segmentation is not deterministic: %v vs %v", first, second)
	}
	if got := sessionLens(first); !reflect.DeepEqual(got, []int{2, 2, 1}) {
		t.Fatalf("expected [2 2 1], got %v", got)
	}
}

func TestGroupByDayWithoutGap(t *testing.T) {
	base := time.Date(2023, 4, 1, 23, 0, 0, 0, time.UTC)
	msgs := msgsAt(base, 0, 30*time.Minute, 2*time.Hour)

	days := GroupByDay(msgs, 0, time.UTC)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if !days[0].Date.Equal(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first date: %v", days[0].Date)
	}
	if len(days[0].Sessions) != 1 || len(days[1].Sessions) != 1 {
		t.Fatalf("expected one session per day without a gap")
	}
	if len(days[0].Sessions[0].Messages) != 2 || len(days[1].Sessions[0].Messages) != 1 {
		t.Fatalf("unexpected day split: %d/%d",
			len(days[0].Sessions[0].Messages), len(days[1].Sessions[0].Messages))
	}
}

func TestGroupByDaySessionStaysOnItsStartDate(t *testing.T) {
	base := time.Date(2023, 4, 1, 23, 50, 0, 0, time.UTC)
	// One session crossing midnight, then a new one the next evening.
	msgs := msgsAt(base, 0, 15*time.Minute, 20*time.Hour)

	days := GroupByDay(msgs, 30*time.Minute, time.UTC)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if got := len(days[0].Sessions[0].Messages); got != 2 {
		t.Fatalf("session crossing midnight should stay on its start date, got %d messages", got)
	}
}

func TestGroupByDayHonorsZone(t *testing.T) {
	// 23:30 UTC on Apr 1 is already Apr 2 in UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	msgs := msgsAt(time.Date(2023, 4, 1, 23, 30, 0, 0, time.UTC), 0)

	days := GroupByDay(msgs, 0, loc)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if got := days[0].Date.Format("2006-01-02"); got != "2023-04-02" {
		t.Fatalf("expected 2023-04-02, got %s", got)
	}
}
