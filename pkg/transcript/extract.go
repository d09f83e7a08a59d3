package transcript

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Payload extraction regular expressions.
var (
	// Any HTTP/HTTPS URL: scheme then a non-whitespace run.
	linkRe = regexp.MustCompile(`https?://\S+`)

	// Google Maps share link with inline coordinates.
	googleMapsRe = regexp.MustCompile(`(?i)https://maps\.google\.com/\?q=(-?[0-9.]+),(-?[0-9.]+)`)

	// Foursquare check-in line: "Place name: https://foursquare.com/...".
	foursquareRe = regexp.MustCompile(`(?im)^(.*?):\s*(https://foursquare\.com[^\s]+)`)

	// Apple Maps share link; coordinates live in an optional ll= query
	// parameter and are pulled out with net/url below.
	appleMapsRe = regexp.MustCompile(`(?i)https://maps\.apple\.com/\?[^\s]*`)

	// iOS attachment notation: <attached: filename>.
	attachedRe = regexp.MustCompile(`(?i)<attached:\s*([^>]+)>`)

	// Android attachment notation: filename (file attached).
	fileAttachedRe = regexp.MustCompile(`(?i)^(.+?)\s*\(file attached\)`)
)

// extractLinks returns every URL in the body in order of appearance.
func extractLinks(content string) []string {
	return linkRe.FindAllString(content, -1)
}

// extractLocation recognizes shared-location links from the three supported
// providers. Providers are tried in fixed priority order and the first match
// wins; a body carrying both a Google Maps and a Foursquare link yields the
// Google Maps payload only.
func extractLocation(content string) *Location {
	if m := googleMapsRe.FindStringSubmatch(content); m != nil {
		loc := &Location{
			Source:  SourceGoogleMaps,
			RawLink: m[0],
		}
		loc.Latitude = parseCoord(m[1])
		loc.Longitude = parseCoord(m[2])
		return loc
	}

	// Foursquare links carry no coordinates, only the place name the
	// sender typed before the colon.
	if m := foursquareRe.FindStringSubmatch(content); m != nil {
		return &Location{
			Source:    SourceFoursquare,
			RawLink:   m[2],
			PlaceName: strings.TrimSpace(m[1]),
		}
	}

	if raw := appleMapsRe.FindString(content); raw != "" {
		loc := &Location{
			Source:  SourceAppleMaps,
			RawLink: raw,
		}
		if lat, lon, ok := appleCoordinates(raw); ok {
			loc.Latitude = lat
			loc.Longitude = lon
		}
		return loc
	}

	return nil
}

// appleCoordinates extracts the ll=<lat>,<lon> query parameter from an Apple
// Maps link, which may appear anywhere in the query string or not at all.
func appleCoordinates(raw string) (*float64, *float64, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, nil, false
	}
	ll := u.Query().Get("ll")
	lat, lon, ok := strings.Cut(ll, ",")
	if !ok {
		return nil, nil, false
	}
	latF := parseCoord(lat)
	lonF := parseCoord(lon)
	if latF == nil || lonF == nil {
		return nil, nil, false
	}
	return latF, lonF, true
}

// parseCoord parses a coordinate string, returning nil on malformed input
// rather than failing the whole extraction.
func parseCoord(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// extractAttachmentName pulls a filename out of either attachment notation.
// The bracketed iOS form is tried first, then the Android trailing marker.
func extractAttachmentName(content string) string {
	if m := attachedRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fileAttachedRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
