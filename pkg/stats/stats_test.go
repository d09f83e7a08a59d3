package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlens/chatlens/pkg/transcript"
)

func msg(ts time.Time, sender, content string) transcript.Message {
	return transcript.Message{Timestamp: ts, Sender: sender, Content: content}
}

func mediaMsg(ts time.Time, sender string, kind transcript.MediaKind) transcript.Message {
	return transcript.Message{
		Timestamp: ts,
		Sender:    sender,
		Content:   string(kind) + " omitted",
		IsMedia:   true,
		MediaKind: kind,
	}
}

func testResult() *transcript.Result {
	base := time.Date(2023, time.December, 5, 14, 0, 0, 0, time.UTC)
	return &transcript.Result{
		Messages: []transcript.Message{
			msg(base, "Ava", "hello there"),
			msg(base.Add(2*time.Minute), "Ben", "hi"),
			mediaMsg(base.Add(5*time.Minute), "Ava", transcript.MediaImage),
			msg(base.Add(26*time.Hour), "Ava", "check https://example.com please"),
			{
				Timestamp: base.Add(27 * time.Hour),
				Sender:    "Ben",
				Content:   "here https://a.example and https://b.example",
				Links:     []string{"https://a.example", "https://b.example"},
			},
		},
		Participants: []string{"Ava", "Ben"},
	}
}

func TestCounts(t *testing.T) {
	a := New(testResult(), 2)

	assert.Equal(t, 5, a.MessageCount())
	assert.Equal(t, 1, a.MediaCount())
	assert.Equal(t, 2, a.LinkCount())
	assert.Equal(t, []string{"Ava", "Ben"}, a.Participants())
}

func TestTimeRangeAndDuration(t *testing.T) {
	a := New(testResult(), 2)

	start, end := a.TimeRange()
	assert.Equal(t, time.Date(2023, time.December, 5, 14, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2023, time.December, 6, 17, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 1, a.DurationDays())
}

func TestTimeRange_Empty(t *testing.T) {
	a := New(&transcript.Result{}, 2)

	start, end := a.TimeRange()
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
	assert.Zero(t, a.DurationDays())
	assert.Empty(t, a.MostActiveParticipant())
	_, ok := a.MostActiveHour()
	assert.False(t, ok)
}

func TestPerParticipant(t *testing.T) {
	a := New(testResult(), 2)

	assert.Equal(t, map[string]int{"Ava": 3, "Ben": 2}, a.MessagesByParticipant())
	assert.Equal(t, map[string]int{"Ava": 1}, a.MediaByParticipant())
	assert.Equal(t, "Ava", a.MostActiveParticipant())

	avgs := a.AvgMessageLengthByParticipant()
	// Ava: "hello there" (11) and the link message (32); media excluded.
	assert.InDelta(t, 21.5, avgs["Ava"], 0.01)

	medians := a.MedianMessageLengthByParticipant()
	assert.InDelta(t, 21.5, medians["Ava"], 0.01)
}

func TestTimeDistributions(t *testing.T) {
	a := New(testResult(), 2)

	byHour := a.MessagesByHour()
	assert.Equal(t, 3, byHour[14])
	assert.Equal(t, 1, byHour[16])
	assert.Equal(t, 1, byHour[17])

	hour, ok := a.MostActiveHour()
	require.True(t, ok)
	assert.Equal(t, 14, hour)

	byDate := a.MessagesByDate()
	assert.Equal(t, 3, byDate["2023-12-05"])
	assert.Equal(t, 2, byDate["2023-12-06"])
	assert.Equal(t, "2023-12-05", a.MostActiveDate())

	assert.Equal(t, map[string]int{"2023-12": 5}, a.MessagesByMonth())

	byWeekday := a.MessagesByWeekday()
	assert.Equal(t, 3, byWeekday[time.Tuesday])
	assert.Equal(t, 2, byWeekday[time.Wednesday])
}

func TestMediaKindsAndLinks(t *testing.T) {
	a := New(testResult(), 2)

	assert.Equal(t, map[transcript.MediaKind]int{transcript.MediaImage: 1}, a.MediaKinds())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, a.Links())
	assert.Equal(t, map[string][]string{
		"Ben": {"https://a.example", "https://b.example"},
	}, a.LinksByParticipant())
}

func TestSearch(t *testing.T) {
	a := New(testResult(), 2)

	hits := a.Search("HELLO", false)
	require.Len(t, hits, 1)
	assert.Equal(t, "Ava", hits[0].Sender)

	assert.Empty(t, a.Search("HELLO", true))
	assert.Len(t, a.Search("hello", true), 1)
}

func TestMessageFilters(t *testing.T) {
	a := New(testResult(), 2)

	assert.Len(t, a.MessagesFrom("Ben"), 2)
	assert.Empty(t, a.MessagesFrom("Cleo"))

	start := time.Date(2023, time.December, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.December, 7, 0, 0, 0, 0, time.UTC)
	assert.Len(t, a.MessagesBetween(start, end), 2)
}

func TestMedian(t *testing.T) {
	assert.Zero(t, median(nil))
	assert.InDelta(t, 3.0, median([]float64{3}), 1e-9)
	assert.InDelta(t, 2.5, median([]float64{4, 1, 2, 3}), 1e-9)
	assert.InDelta(t, 2.0, median([]float64{3, 1, 2}), 1e-9)
}
