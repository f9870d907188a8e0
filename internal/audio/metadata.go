package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Tags holds descriptive metadata for an input file
type Tags struct {
	Title  string
	Artist string
}

// Label returns "Artist - Title", falling back to whichever is present
// and finally to the file's base name.
func (t Tags) Label(path string) string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	case t.Artist != "":
		return t.Artist
	}
	return filepath.Base(path)
}

// ReadTags reads ID3v2 title and artist frames from path. Files without a tag,
// or in formats that do not carry ID3v2, return empty Tags and no error.
func ReadTags(path string) (Tags, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return Tags{}, nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, err
	}
	defer tag.Close()

	return Tags{
		Title:  strings.TrimSpace(tag.Title()),
		Artist: strings.TrimSpace(tag.Artist()),
	}, nil
}
