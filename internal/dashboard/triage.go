package dashboard

import (
	"sort"
	"strings"
	"time"

	"signa-dashboard/internal/models"
)

var entryTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// QueueFilter narrows the triage queue; zero fields match everything.
type QueueFilter struct {
	Triage    models.TriageLevel
	Specialty string
}

// QueueEntry is one patient in the triage queue.
type QueueEntry struct {
	Visit    models.Visit `json:"visita"`
	Severity int          `json:"severity"`
	// Waiting is zero when the entry time cannot be parsed.
	Waiting time.Duration `json:"waiting_ns"`
	Since   string        `json:"waiting"`
}

// ParseEntryTime reads a visit entry time. Times without a zone are UTC.
func ParseEntryTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range entryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TriageQueue orders visits most severe first, then by earliest entry.
// Visits with an unreadable entry time go last within their level.
func TriageQueue(visits []models.Visit, f QueueFilter, now time.Time) []QueueEntry {
	type ranked struct {
		entry QueueEntry
		at    time.Time
		ok    bool
	}

	items := make([]ranked, 0, len(visits))
	for _, v := range visits {
		if f.Triage != "" && !strings.EqualFold(string(v.Triage), string(f.Triage)) {
			continue
		}
		if f.Specialty != "" && !strings.EqualFold(strings.TrimSpace(v.Specialty), strings.TrimSpace(f.Specialty)) {
			continue
		}
		at, ok := ParseEntryTime(v.EntryTime)
		var waiting time.Duration
		if ok && now.After(at) {
			waiting = now.Sub(at).Truncate(time.Second)
		}
		items = append(items, ranked{
			entry: QueueEntry{Visit: v, Severity: v.Triage.Severity(), Waiting: waiting, Since: waiting.String()},
			at:    at,
			ok:    ok,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.entry.Severity != b.entry.Severity {
			return a.entry.Severity < b.entry.Severity
		}
		if a.ok != b.ok {
			return a.ok
		}
		return a.at.Before(b.at)
	})

	out := make([]QueueEntry, len(items))
	for i, it := range items {
		out[i] = it.entry
	}
	return out
}
