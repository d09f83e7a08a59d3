package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlens/chatlens/pkg/transcript"
)

func TestWordFrequency(t *testing.T) {
	base := time.Date(2023, time.December, 5, 14, 0, 0, 0, time.UTC)
	result := &transcript.Result{
		Messages: []transcript.Message{
			msg(base, "Ava", "Coffee coffee COFFEE!"),
			msg(base.Add(time.Minute), "Ben", "coffee tomorrow?"),
			msg(base.Add(2*time.Minute), "Ava", "tomorrow works, see https://cafe.example"),
			mediaMsg(base.Add(3*time.Minute), "Ava", transcript.MediaImage),
			{
				Timestamp: base.Add(4 * time.Minute),
				Sender:    "Ben",
				Content:   "Ava created group",
				IsSystem:  true,
			},
		},
		Participants: []string{"Ava", "Ben"},
	}
	a := New(result, 2)

	top := a.WordFrequency(10, "")
	require.NotEmpty(t, top)
	assert.Equal(t, WordCount{Word: "coffee", Count: 4}, top[0])
	assert.Contains(t, top, WordCount{Word: "tomorrow", Count: 2})
	for _, wc := range top {
		assert.NotContains(t, wc.Word, "http", "URLs must not be counted")
		assert.NotEqual(t, "omitted", wc.Word, "media placeholders must be skipped")
		assert.NotEqual(t, "created", wc.Word, "system notifications must be skipped")
	}

	avaOnly := a.WordFrequency(10, "Ava")
	assert.Contains(t, avaOnly, WordCount{Word: "coffee", Count: 3})
	assert.Contains(t, avaOnly, WordCount{Word: "tomorrow", Count: 1})
}

func TestWordFrequency_MinLengthAndTopN(t *testing.T) {
	base := time.Date(2023, time.December, 5, 14, 0, 0, 0, time.UTC)
	result := &transcript.Result{
		Messages: []transcript.Message{
			msg(base, "Ava", "a be sea a be sea sea"),
		},
		Participants: []string{"Ava"},
	}

	a := New(result, 2)
	top := a.WordFrequency(0, "")
	assert.Equal(t, []WordCount{{Word: "sea", Count: 3}, {Word: "be", Count: 2}}, top)

	assert.Equal(t, []WordCount{{Word: "sea", Count: 3}}, a.WordFrequency(1, ""))

	// minWordLength below 1 is clamped, keeping single-rune words.
	loose := New(result, 0)
	assert.Contains(t, loose.WordFrequency(0, ""), WordCount{Word: "a", Count: 2})
}

func TestWordFrequency_TieBreak(t *testing.T) {
	base := time.Date(2023, time.December, 5, 14, 0, 0, 0, time.UTC)
	result := &transcript.Result{
		Messages: []transcript.Message{
			msg(base, "Ava", "pear apple pear apple"),
		},
		Participants: []string{"Ava"},
	}
	a := New(result, 2)

	assert.Equal(t, []WordCount{
		{Word: "apple", Count: 2},
		{Word: "pear", Count: 2},
	}, a.WordFrequency(0, ""))
}

func TestEmojiFrequency(t *testing.T) {
	base := time.Date(2023, time.December, 5, 14, 0, 0, 0, time.UTC)
	result := &transcript.Result{
		Messages: []transcript.Message{
			msg(base, "Ava", "great \U0001F600\U0001F600"),
			msg(base.Add(time.Minute), "Ben", "\U0001F600 ❤"),
		},
		Participants: []string{"Ava", "Ben"},
	}
	a := New(result, 2)

	top := a.EmojiFrequency(10, "")
	assert.Equal(t, []WordCount{
		{Word: "\U0001F600", Count: 3},
		{Word: "❤", Count: 1},
	}, top)

	assert.Equal(t, []WordCount{{Word: "\U0001F600", Count: 2}}, a.EmojiFrequency(10, "Ava"))
}

func TestSplitWords(t *testing.T) {
	words := splitWords("Hello, world! (see https://x.example) it's fine...")
	assert.Equal(t, []string{"Hello", "world", "see", "it's", "fine"}, words)
}
