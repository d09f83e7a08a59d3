// Package export acquires chat transcript text from exported files.
//
// Chat apps export either a bare .txt transcript or a .zip archive holding
// the transcript alongside media files. This package locates the transcript,
// decodes it to UTF-8, and hands the text to the parser. Acquisition is the
// only fatal stage: a file that cannot be read or decoded aborts the run,
// everything after that degrades per line.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	clerrors "github.com/chatlens/chatlens/pkg/errors"
)

// maxTranscriptSize caps how much is read from a single archive entry, to
// guard against decompression bombs.
const maxTranscriptSize = 1 << 30

// Read returns the decoded transcript text from path, which may be a plain
// .txt transcript or a .zip export archive.
func Read(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return readArchive(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", clerrors.ErrSourceUnavailable, err)
	}
	return decode(data)
}

// readArchive pulls the first transcript entry out of a zip export. Media
// files in the archive are ignored; only the .txt transcript is wanted.
func readArchive(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", clerrors.ErrSourceUnavailable, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !isTranscriptEntry(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", clerrors.ErrSourceUnavailable, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxTranscriptSize))
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("%w: %v", clerrors.ErrSourceUnavailable, err)
		}
		return decode(data)
	}

	return "", fmt.Errorf("%w: %s", clerrors.ErrNoTranscript, path)
}

// isTranscriptEntry reports whether a zip entry name looks like the exported
// transcript, skipping macOS resource junk and hidden files.
func isTranscriptEntry(name string) bool {
	clean := filepath.Clean(name)
	if strings.Contains(clean, "..") || strings.HasPrefix(clean, "__MACOSX") {
		return false
	}
	base := filepath.Base(clean)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(base), ".txt")
}

// decode converts raw transcript bytes to a UTF-8 string. Exports are
// usually UTF-8 already; some tools write UTF-16 with a byte-order mark,
// which is transformed here. Anything that still is not valid UTF-8 is a
// fatal decode failure.
func decode(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", clerrors.ErrUndecodable, err)
		}
		data = out
	}

	if !utf8.Valid(data) {
		return "", clerrors.ErrUndecodable
	}
	return string(data), nil
}
