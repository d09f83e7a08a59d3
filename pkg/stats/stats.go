// Package stats computes descriptive statistics over a parsed transcript:
// message and media totals, per-participant activity, time-of-day and
// calendar distributions, and word/emoji frequency tables.
package stats

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/chatlens/chatlens/pkg/transcript"
)

// Analyzer computes statistics over one parse result. It holds no mutable
// state; every method is a pure function over the message sequence.
type Analyzer struct {
	messages      []transcript.Message
	participants  []string
	minWordLength int
}

// New creates an Analyzer. minWordLength is the shortest word counted by
// WordFrequency; values below 1 are treated as 1.
func New(result *transcript.Result, minWordLength int) *Analyzer {
	if minWordLength < 1 {
		minWordLength = 1
	}
	return &Analyzer{
		messages:      result.Messages,
		participants:  result.Participants,
		minWordLength: minWordLength,
	}
}

// MessageCount returns the total number of messages.
func (a *Analyzer) MessageCount() int {
	return len(a.messages)
}

// MediaCount returns the number of media messages.
func (a *Analyzer) MediaCount() int {
	n := 0
	for _, m := range a.messages {
		if m.IsMedia {
			n++
		}
	}
	return n
}

// Participants returns the distinct sender names in first-seen order.
func (a *Analyzer) Participants() []string {
	return a.participants
}

// TimeRange returns the first and last message timestamps. Both are zero
// when the transcript is empty.
func (a *Analyzer) TimeRange() (start, end time.Time) {
	if len(a.messages) == 0 {
		return
	}
	return a.messages[0].Timestamp, a.messages[len(a.messages)-1].Timestamp
}

// DurationDays returns the whole days between the first and last message.
func (a *Analyzer) DurationDays() int {
	start, end := a.TimeRange()
	if start.IsZero() {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// MessagesByParticipant returns the message count per sender.
func (a *Analyzer) MessagesByParticipant() map[string]int {
	counts := make(map[string]int)
	for _, m := range a.messages {
		counts[m.Sender]++
	}
	return counts
}

// MediaByParticipant returns the media message count per sender.
func (a *Analyzer) MediaByParticipant() map[string]int {
	counts := make(map[string]int)
	for _, m := range a.messages {
		if m.IsMedia {
			counts[m.Sender]++
		}
	}
	return counts
}

// AvgMessageLengthByParticipant returns the mean body length in characters
// per sender, media placeholders excluded.
func (a *Analyzer) AvgMessageLengthByParticipant() map[string]float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, m := range a.messages {
		if m.IsMedia {
			continue
		}
		sums[m.Sender] += utf8.RuneCountInString(m.Content)
		counts[m.Sender]++
	}
	avgs := make(map[string]float64, len(sums))
	for sender, sum := range sums {
		avgs[sender] = float64(sum) / float64(counts[sender])
	}
	return avgs
}

// MedianMessageLengthByParticipant returns the median body length in
// characters per sender, media placeholders excluded.
func (a *Analyzer) MedianMessageLengthByParticipant() map[string]float64 {
	lengths := make(map[string][]float64)
	for _, m := range a.messages {
		if m.IsMedia {
			continue
		}
		lengths[m.Sender] = append(lengths[m.Sender], float64(utf8.RuneCountInString(m.Content)))
	}
	medians := make(map[string]float64, len(lengths))
	for sender, ls := range lengths {
		medians[sender] = median(ls)
	}
	return medians
}

// MostActiveParticipant returns the sender with the most messages, empty
// when there are none. Ties resolve to the lexically smaller name so the
// result is deterministic.
func (a *Analyzer) MostActiveParticipant() string {
	counts := a.MessagesByParticipant()
	best := ""
	bestCount := 0
	for sender, n := range counts {
		if n > bestCount || (n == bestCount && (best == "" || sender < best)) {
			best = sender
			bestCount = n
		}
	}
	return best
}

// MessagesByHour returns the message count per hour of day (0-23).
func (a *Analyzer) MessagesByHour() map[int]int {
	counts := make(map[int]int)
	for _, m := range a.messages {
		counts[m.Timestamp.Hour()]++
	}
	return counts
}

// MessagesByWeekday returns the message count per day of the week.
func (a *Analyzer) MessagesByWeekday() map[time.Weekday]int {
	counts := make(map[time.Weekday]int)
	for _, m := range a.messages {
		counts[m.Timestamp.Weekday()]++
	}
	return counts
}

// MessagesByMonth returns the message count per calendar month ("2006-01").
func (a *Analyzer) MessagesByMonth() map[string]int {
	counts := make(map[string]int)
	for _, m := range a.messages {
		counts[m.Timestamp.Format("2006-01")]++
	}
	return counts
}

// MessagesByDate returns the message count per calendar date ("2006-01-02").
func (a *Analyzer) MessagesByDate() map[string]int {
	counts := make(map[string]int)
	for _, m := range a.messages {
		counts[m.Timestamp.Format("2006-01-02")]++
	}
	return counts
}

// MostActiveHour returns the hour of day with the most messages.
func (a *Analyzer) MostActiveHour() (int, bool) {
	counts := a.MessagesByHour()
	if len(counts) == 0 {
		return 0, false
	}
	best, bestCount := 0, -1
	for hour, n := range counts {
		if n > bestCount || (n == bestCount && hour < best) {
			best = hour
			bestCount = n
		}
	}
	return best, true
}

// MostActiveDate returns the calendar date with the most messages, empty
// when there are none.
func (a *Analyzer) MostActiveDate() string {
	counts := a.MessagesByDate()
	best := ""
	bestCount := 0
	for date, n := range counts {
		if n > bestCount || (n == bestCount && (best == "" || date < best)) {
			best = date
			bestCount = n
		}
	}
	return best
}

// MediaKinds returns the count of each media kind.
func (a *Analyzer) MediaKinds() map[transcript.MediaKind]int {
	counts := make(map[transcript.MediaKind]int)
	for _, m := range a.messages {
		if m.IsMedia {
			counts[m.MediaKind]++
		}
	}
	return counts
}

// LinkCount returns the total number of links shared.
func (a *Analyzer) LinkCount() int {
	n := 0
	for _, m := range a.messages {
		n += len(m.Links)
	}
	return n
}

// Links returns every shared link in message order.
func (a *Analyzer) Links() []string {
	var links []string
	for _, m := range a.messages {
		links = append(links, m.Links...)
	}
	return links
}

// LinksByParticipant returns the links each sender shared, in order.
func (a *Analyzer) LinksByParticipant() map[string][]string {
	links := make(map[string][]string)
	for _, m := range a.messages {
		if len(m.Links) > 0 {
			links[m.Sender] = append(links[m.Sender], m.Links...)
		}
	}
	return links
}

// Search returns the messages whose body contains keyword. The search is
// case-insensitive unless caseSensitive is set.
func (a *Analyzer) Search(keyword string, caseSensitive bool) []transcript.Message {
	if !caseSensitive {
		keyword = strings.ToLower(keyword)
	}
	var hits []transcript.Message
	for _, m := range a.messages {
		content := m.Content
		if !caseSensitive {
			content = strings.ToLower(content)
		}
		if strings.Contains(content, keyword) {
			hits = append(hits, m)
		}
	}
	return hits
}

// MessagesFrom returns all messages sent by participant.
func (a *Analyzer) MessagesFrom(participant string) []transcript.Message {
	var msgs []transcript.Message
	for _, m := range a.messages {
		if m.Sender == participant {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// MessagesBetween returns all messages with start <= timestamp <= end.
func (a *Analyzer) MessagesBetween(start, end time.Time) []transcript.Message {
	var msgs []transcript.Message
	for _, m := range a.messages {
		if !m.Timestamp.Before(start) && !m.Timestamp.After(end) {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// median returns the median of vs, averaging the two middle values for even
// lengths. vs may be reordered.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 1 {
		return vs[mid]
	}
	return (vs[mid-1] + vs[mid]) / 2
}

var foldCaser = cases.Fold()
