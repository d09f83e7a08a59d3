// Package locations analyzes location shares in a parsed transcript:
// who shared what place, via which map service, and the geographic
// bounding box of all shares that carry coordinates.
package locations

import (
	"time"

	"github.com/chatlens/chatlens/pkg/transcript"
)

// Share is one shared location with its message context attached.
type Share struct {
	transcript.Location `yaml:",inline"`

	Sender    string    `json:"sender" yaml:"sender"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Content   string    `json:"content" yaml:"content"`
}

// Bounds is the bounding box of a set of coordinates.
type Bounds struct {
	MinLatitude  float64 `json:"min_latitude" yaml:"min_latitude"`
	MaxLatitude  float64 `json:"max_latitude" yaml:"max_latitude"`
	MinLongitude float64 `json:"min_longitude" yaml:"min_longitude"`
	MaxLongitude float64 `json:"max_longitude" yaml:"max_longitude"`

	CenterLatitude  float64 `json:"center_latitude" yaml:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude" yaml:"center_longitude"`
}

// Analyzer extracts location metrics from a message sequence.
type Analyzer struct {
	messages []transcript.Message
}

// New creates an Analyzer over messages.
func New(messages []transcript.Message) *Analyzer {
	return &Analyzer{messages: messages}
}

// All returns every location share in message order.
func (a *Analyzer) All() []Share {
	var shares []Share
	for _, m := range a.messages {
		if m.Location != nil {
			shares = append(shares, newShare(m))
		}
	}
	return shares
}

// WithCoordinates returns only the shares carrying both a latitude and a
// longitude. Foursquare venue links have a place name but no coordinates,
// so they are excluded here.
func (a *Analyzer) WithCoordinates() []Share {
	var shares []Share
	for _, m := range a.messages {
		if m.Location != nil && m.Location.HasCoordinates() {
			shares = append(shares, newShare(m))
		}
	}
	return shares
}

// ByParticipant returns location shares grouped by sender.
func (a *Analyzer) ByParticipant() map[string][]Share {
	shares := make(map[string][]Share)
	for _, m := range a.messages {
		if m.Location != nil {
			shares[m.Sender] = append(shares[m.Sender], newShare(m))
		}
	}
	return shares
}

// Count returns the total number of location shares.
func (a *Analyzer) Count() int {
	n := 0
	for _, m := range a.messages {
		if m.Location != nil {
			n++
		}
	}
	return n
}

// CountByParticipant returns the number of location shares per sender.
func (a *Analyzer) CountByParticipant() map[string]int {
	counts := make(map[string]int)
	for _, m := range a.messages {
		if m.Location != nil {
			counts[m.Sender]++
		}
	}
	return counts
}

// CountBySource returns the number of location shares per map service.
func (a *Analyzer) CountBySource() map[transcript.LocationSource]int {
	counts := make(map[transcript.LocationSource]int)
	for _, m := range a.messages {
		if m.Location != nil {
			counts[m.Location.Source]++
		}
	}
	return counts
}

// BoundingBox returns the bounding box of all shares with coordinates. ok is
// false when no share carries coordinates.
func (a *Analyzer) BoundingBox() (b Bounds, ok bool) {
	first := true
	for _, m := range a.messages {
		if m.Location == nil || !m.Location.HasCoordinates() {
			continue
		}
		lat, lon := *m.Location.Latitude, *m.Location.Longitude
		if first {
			b = Bounds{
				MinLatitude: lat, MaxLatitude: lat,
				MinLongitude: lon, MaxLongitude: lon,
			}
			first = false
			continue
		}
		if lat < b.MinLatitude {
			b.MinLatitude = lat
		}
		if lat > b.MaxLatitude {
			b.MaxLatitude = lat
		}
		if lon < b.MinLongitude {
			b.MinLongitude = lon
		}
		if lon > b.MaxLongitude {
			b.MaxLongitude = lon
		}
	}
	if first {
		return Bounds{}, false
	}
	b.CenterLatitude = (b.MinLatitude + b.MaxLatitude) / 2
	b.CenterLongitude = (b.MinLongitude + b.MaxLongitude) / 2
	return b, true
}

func newShare(m transcript.Message) Share {
	return Share{
		Location:  *m.Location,
		Sender:    m.Sender,
		Timestamp: m.Timestamp,
		Content:   m.Content,
	}
}
