package stats

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordCount is one entry of a frequency table.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// WordFrequency returns the topN most frequent words, case-folded, across
// ordinary text messages (media placeholders and system notifications are
// skipped, as are URLs). A non-empty participant restricts the count to that
// sender's messages. Ties order alphabetically so results are stable.
func (a *Analyzer) WordFrequency(topN int, participant string) []WordCount {
	counts := make(map[string]int)
	for _, m := range a.messages {
		if m.IsMedia || m.IsSystem {
			continue
		}
		if participant != "" && m.Sender != participant {
			continue
		}
		for _, word := range splitWords(m.Content) {
			if utf8.RuneCountInString(word) < a.minWordLength {
				continue
			}
			counts[foldCaser.String(word)]++
		}
	}
	return topCounts(counts, topN)
}

// EmojiFrequency returns the topN most frequent emoji across all messages,
// optionally restricted to one participant.
func (a *Analyzer) EmojiFrequency(topN int, participant string) []WordCount {
	counts := make(map[string]int)
	for _, m := range a.messages {
		if participant != "" && m.Sender != participant {
			continue
		}
		for _, r := range m.Content {
			if isEmoji(r) {
				counts[string(r)]++
			}
		}
	}
	return topCounts(counts, topN)
}

// splitWords breaks a body into words: whitespace-separated runs with
// surrounding punctuation stripped, URLs discarded.
func splitWords(content string) []string {
	fields := strings.Fields(content)
	words := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			continue
		}
		w := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// isEmoji reports whether r falls in the common emoji blocks.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended-A
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	}
	return false
}

// topCounts sorts a count map descending and keeps the first topN entries.
func topCounts(counts map[string]int, topN int) []WordCount {
	ordered := make([]WordCount, 0, len(counts))
	for w, n := range counts {
		ordered = append(ordered, WordCount{Word: w, Count: n})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return ordered[i].Word < ordered[j].Word
	})
	if topN > 0 && len(ordered) > topN {
		ordered = ordered[:topN]
	}
	return ordered
}
