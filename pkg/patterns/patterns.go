// Package patterns analyzes conversation dynamics in a parsed transcript:
// how quickly participants respond to one another and who tends to break
// a silence and start a new conversation.
package patterns

import (
	"sort"
	"time"

	"github.com/chatlens/chatlens/pkg/transcript"
)

// Analyzer computes conversation pattern metrics over a message sequence.
type Analyzer struct {
	messages    []transcript.Message
	gap         time.Duration
	maxResponse time.Duration
}

// New creates an Analyzer. gap is the silence length after which the next
// message starts a new conversation; maxResponse is the longest gap still
// counted as a response rather than a fresh conversation.
func New(messages []transcript.Message, gap, maxResponse time.Duration) *Analyzer {
	return &Analyzer{
		messages:    messages,
		gap:         gap,
		maxResponse: maxResponse,
	}
}

// ResponseTimes returns the response times of participant, in message order.
// A response is a message by participant immediately following a message by
// a different sender; gaps of maxResponse or more are excluded since they
// mark a new conversation, not a reply.
func (a *Analyzer) ResponseTimes(participant string) []time.Duration {
	var times []time.Duration
	var lastTime time.Time
	var lastSender string

	for _, m := range a.messages {
		if lastSender != "" && lastSender != m.Sender && m.Sender == participant {
			if d := m.Timestamp.Sub(lastTime); d < a.maxResponse {
				times = append(times, d)
			}
		}
		lastTime = m.Timestamp
		lastSender = m.Sender
	}
	return times
}

// AvgResponseTime returns the mean response time of participant. ok is false
// when the participant never responded within the cap.
func (a *Analyzer) AvgResponseTime(participant string) (avg time.Duration, ok bool) {
	times := a.ResponseTimes(participant)
	if len(times) == 0 {
		return 0, false
	}
	var sum time.Duration
	for _, d := range times {
		sum += d
	}
	return sum / time.Duration(len(times)), true
}

// MedianResponseTime returns the median response time of participant. ok is
// false when the participant never responded within the cap.
func (a *Analyzer) MedianResponseTime(participant string) (med time.Duration, ok bool) {
	times := a.ResponseTimes(participant)
	if len(times) == 0 {
		return 0, false
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	mid := len(times) / 2
	if len(times)%2 == 1 {
		return times[mid], true
	}
	return (times[mid-1] + times[mid]) / 2, true
}

// ConversationStarters returns how many conversations each participant
// started. The first message of the transcript starts a conversation, as
// does any message arriving after a silence longer than the configured gap.
func (a *Analyzer) ConversationStarters() map[string]int {
	starters := make(map[string]int)
	var lastTime time.Time

	for _, m := range a.messages {
		if lastTime.IsZero() || m.Timestamp.Sub(lastTime) > a.gap {
			starters[m.Sender]++
		}
		lastTime = m.Timestamp
	}
	return starters
}
