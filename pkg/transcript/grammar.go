package transcript

import (
	"regexp"
	"time"
)

// Message line regular expressions.
// Supports:
//   - Android EN: M/D/YY, HH:MM - Sender: Text
//   - iOS:        [DD.MM.YY, HH:MM:SS] Sender: Text (brackets optional)
var (
	// Android format: slash date, minute-precision time, " - " separator.
	androidRe = regexp.MustCompile(`(?m)^(\d{1,2}/\d{1,2}/\d{2,4}),\s+(\d{1,2}:\d{2})\s+-\s+([^:]+?):\s+(.*)$`)

	// iOS format: dotted date, seconds included, optionally bracketed.
	iosRe = regexp.MustCompile(`(?m)^\[?(\d{2}\.\d{2}\.\d{2,4}),\s+(\d{1,2}:\d{2}:\d{2})\]?\s+([^:]+?):\s+(.*)$`)
)

// grammar is one recognized line format: a header regexp with
// (date, time, sender, body) capture groups, the timestamp layouts tried in
// order for its captures, and whether body text continues across physical
// lines up to the next header.
type grammar struct {
	name      string
	re        *regexp.Regexp
	layouts   []string
	multiline bool
}

// grammars builds the registered grammar list from cfg. Registration order
// matters twice: detection ties keep the earlier grammar, and the Android
// grammar comes first because the slash-date convention is the more common
// export shape.
func grammars(cfg *Config) []*grammar {
	return []*grammar{
		{
			name:      "android",
			re:        androidRe,
			layouts:   cfg.AndroidDateLayouts,
			multiline: true,
		},
		{
			name:    "ios",
			re:      iosRe,
			layouts: cfg.IOSDateLayouts,
		},
	}
}

// resolveTimestamp tries each layout in order against the captured date and
// time substrings and returns the first success. Exports from different
// locales disagree on month/day order and year width; the layout chain
// resolves the ambiguity by preference order.
func resolveTimestamp(layouts []string, dateStr, timeStr string) (time.Time, bool) {
	raw := dateStr + " " + timeStr
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// detect scans the whole document with every registered grammar and returns
// the grammar with the strictly greatest match count together with its
// matches (as FindAllStringSubmatchIndex index slices). Ties keep the
// earliest-registered grammar. A nil grammar means nothing matched, which is
// a valid empty-document outcome, not an error.
func detect(gs []*grammar, text string) (*grammar, [][]int) {
	var (
		best        *grammar
		bestMatches [][]int
	)
	for _, g := range gs {
		matches := g.re.FindAllStringSubmatchIndex(text, -1)
		if len(matches) > len(bestMatches) {
			best = g
			bestMatches = matches
		}
	}
	if len(bestMatches) == 0 {
		return nil, nil
	}
	return best, bestMatches
}
