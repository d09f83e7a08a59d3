package transcript

import (
	"strings"
)

// Parser turns a chat export text into a Result. A Parser is immutable and
// safe for concurrent use; each Parse call builds its own record sequence
// and participant set.
type Parser struct {
	cfg      *Config
	grammars []*grammar
}

// New creates a Parser with the given configuration. A nil cfg uses
// DefaultConfig.
func New(cfg *Config) *Parser {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Parser{
		cfg:      cfg,
		grammars: grammars(cfg),
	}
}

// Parse parses the full transcript text. Detection needs the whole document,
// so there is no streaming variant: every registered grammar is scanned over
// the entire text and the one with the most matches wins.
//
// Per-line failures are tolerated silently: a header line whose date or time
// resolves under no configured layout produces no record. A document where
// no grammar matches at all yields an empty Result.
func (p *Parser) Parse(text string) *Result {
	text = stripInvisible(text)

	result := &Result{
		Messages:     make([]Message, 0),
		Participants: make([]string, 0),
	}

	g, matches := detect(p.grammars, text)
	if g == nil {
		return result
	}
	result.Format = g.name

	seen := make(map[string]bool)

	for i, m := range matches {
		// Submatch index pairs: 1 date, 2 time, 3 sender, 4 body.
		dateStr := text[m[2]:m[3]]
		timeStr := text[m[4]:m[5]]
		sender := strings.TrimSpace(text[m[6]:m[7]])
		body := text[m[8]:m[9]]

		ts, ok := resolveTimestamp(g.layouts, dateStr, timeStr)
		if !ok {
			// Malformed date or time. Drop the line and keep going.
			continue
		}

		if g.multiline {
			// The body group stops at end of line; anything between
			// here and the next header line is continuation text.
			end := len(text)
			if i+1 < len(matches) {
				end = matches[i+1][0]
			}
			body += text[m[9]:end]
		}
		body = strings.TrimSpace(body)

		isMedia, kind := classifyMedia(body, p.cfg.MediaIndicators)

		msg := Message{
			Timestamp:      ts,
			Sender:         sender,
			Content:        body,
			IsMedia:        isMedia,
			MediaKind:      kind,
			IsSystem:       isSystemMessage(body, p.cfg.SystemPhrases),
			Links:          extractLinks(body),
			Location:       extractLocation(body),
			AttachmentName: extractAttachmentName(body),
		}

		result.Messages = append(result.Messages, msg)
		if !seen[sender] {
			seen[sender] = true
			result.Participants = append(result.Participants, sender)
		}
	}

	return result
}

// stripInvisible removes the invisible formatting code points chat exports
// embed around names and placeholders: the left-to-right mark, byte-order
// mark, left-to-right embedding, and pop-directional-formatting characters.
// They would otherwise break header and placeholder matching.
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\ufeff', '\u202a', '\u202c':
			return -1
		}
		return r
	}, s)
}
