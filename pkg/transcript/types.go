// Package transcript parses exported chat transcripts into structured
// message records. Exports come in several incompatible line formats
// (Android and iOS conventions, multiple locales); the parser detects the
// format that fits the document best, tokenizes each message line, resolves
// its locale-ambiguous timestamp, classifies the body, and extracts embedded
// payloads (links, shared locations, attachment filenames).
package transcript

import "time"

// MediaKind classifies a non-text message placeholder.
type MediaKind string

const (
	MediaImage      MediaKind = "image"
	MediaVideo      MediaKind = "video"
	MediaSticker    MediaKind = "sticker"
	MediaAudio      MediaKind = "audio"
	MediaDocument   MediaKind = "document"
	MediaGIF        MediaKind = "gif"
	MediaLocation   MediaKind = "location"
	MediaAttachment MediaKind = "attachment"
	// MediaGeneric covers placeholders that name no specific kind,
	// e.g. Android's "<Media omitted>".
	MediaGeneric MediaKind = "media"
	// MediaNone is the zero value for ordinary text messages.
	MediaNone MediaKind = ""
)

// LocationSource identifies the map-sharing service a location link came from.
type LocationSource string

const (
	SourceGoogleMaps LocationSource = "Google Maps"
	SourceFoursquare LocationSource = "Foursquare"
	SourceAppleMaps  LocationSource = "Apple Maps"
)

// Location is a shared-location payload extracted from a message body.
// Latitude and Longitude are pointers so that a genuine 0.0 coordinate is
// distinguishable from "the link carried no coordinates" (Foursquare links
// never do; Apple Maps links only when an ll= parameter is present).
type Location struct {
	Latitude  *float64       `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64       `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Source    LocationSource `json:"source" yaml:"source"`
	RawLink   string         `json:"raw_link" yaml:"raw_link"`
	PlaceName string         `json:"place_name,omitempty" yaml:"place_name,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// Message is one parsed chat message. Messages are immutable once built;
// the parser never revisits a record after appending it to the result.
type Message struct {
	// Timestamp is the message instant as naive local time. Exports carry
	// no timezone, so none is invented.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Sender is the display name, trimmed. Participant identity is exact
	// string match; "Ben" and "Ben K" are two participants.
	Sender string `json:"sender" yaml:"sender"`

	// Content is the trimmed message body. For media and system messages
	// this is the original placeholder or notification text.
	Content string `json:"content" yaml:"content"`

	IsMedia   bool      `json:"is_media" yaml:"is_media"`
	MediaKind MediaKind `json:"media_kind,omitempty" yaml:"media_kind,omitempty"`
	IsSystem  bool      `json:"is_system" yaml:"is_system"`

	// Links holds every HTTP/HTTPS URL in the body, in order of appearance.
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`

	// Location is the shared-location payload, if any provider pattern
	// matched the body.
	Location *Location `json:"location,omitempty" yaml:"location,omitempty"`

	// AttachmentName is the filename extracted from an attachment
	// notation, empty when the body carries none. The notations both
	// require at least one filename character, so empty is unambiguous.
	AttachmentName string `json:"attachment_name,omitempty" yaml:"attachment_name,omitempty"`
}

// HasLink reports whether the message body contained at least one URL.
func (m *Message) HasLink() bool {
	return len(m.Links) > 0
}

// Result is the output of one parse: the ordered message sequence and the
// distinct sender names in first-seen order.
type Result struct {
	Messages     []Message `json:"messages" yaml:"messages"`
	Participants []string  `json:"participants" yaml:"participants"`

	// Format names the line grammar that won detection, empty when no
	// grammar matched anything.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}
