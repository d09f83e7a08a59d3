package transcript

// MediaIndicator maps a placeholder phrase to the media kind it signals.
// The indicator table is ordered; classification takes the first phrase
// contained in the message body.
type MediaIndicator struct {
	Phrase string    `json:"phrase" yaml:"phrase"`
	Kind   MediaKind `json:"kind" yaml:"kind"`
}

// Config is the parser's configuration surface. It is read-only once the
// parser is constructed; tests substitute alternate tables (additional
// languages, extra date layouts) by building their own Config.
type Config struct {
	// MediaIndicators is the ordered phrase→kind table for media
	// classification. First match wins.
	MediaIndicators []MediaIndicator `json:"media_indicators" yaml:"media_indicators"`

	// SystemPhrases are matched case-insensitively anywhere in the body
	// to flag export-generated notifications.
	SystemPhrases []string `json:"system_phrases" yaml:"system_phrases"`

	// AndroidDateLayouts are the time.Parse layouts tried in order for
	// the slash-date Android grammar. Month-first comes before day-first:
	// that is the convention of the exports this grammar typically comes
	// from, and slash dates are otherwise ambiguous.
	AndroidDateLayouts []string `json:"android_date_layouts" yaml:"android_date_layouts"`

	// IOSDateLayouts are the layouts tried in order for the dotted-date
	// bracketed grammar.
	IOSDateLayouts []string `json:"ios_date_layouts" yaml:"ios_date_layouts"`
}

// DefaultConfig returns the stock configuration: German and English
// placeholder phrases, the standard system-notification phrases, and the
// date layout fallback chains for both export conventions.
func DefaultConfig() *Config {
	return &Config{
		MediaIndicators: []MediaIndicator{
			// German
			{Phrase: "Bild weggelassen", Kind: MediaImage},
			{Phrase: "Video weggelassen", Kind: MediaVideo},
			{Phrase: "Sticker weggelassen", Kind: MediaSticker},
			{Phrase: "Audio weggelassen", Kind: MediaAudio},
			{Phrase: "Dokument weggelassen", Kind: MediaDocument},
			{Phrase: "GIF weggelassen", Kind: MediaGIF},
			{Phrase: "Standort:", Kind: MediaLocation},
			// English
			{Phrase: "image omitted", Kind: MediaImage},
			{Phrase: "video omitted", Kind: MediaVideo},
			{Phrase: "sticker omitted", Kind: MediaSticker},
			{Phrase: "audio omitted", Kind: MediaAudio},
			{Phrase: "document omitted", Kind: MediaDocument},
			{Phrase: "GIF omitted", Kind: MediaGIF},
			{Phrase: "Location:", Kind: MediaLocation},
			// Android English generic
			{Phrase: "<Media omitted>", Kind: MediaGeneric},
			// Generic attachment marker
			{Phrase: "<attached:", Kind: MediaAttachment},
		},
		SystemPhrases: []string{
			"Ende-zu-Ende-verschlüsselt",
			"end-to-end encrypted",
			"encrypted",
			"added",
			"left",
			"changed",
			"created group",
			"changed their phone number",
			"security code changed",
		},
		AndroidDateLayouts: []string{
			"1/2/06 15:04",
			"1/2/2006 15:04",
			"2/1/06 15:04",
			"2/1/2006 15:04",
		},
		IOSDateLayouts: []string{
			"02.01.2006 15:04:05",
			"02.01.06 15:04:05",
		},
	}
}
