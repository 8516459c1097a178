package bootstrap

import (
	"fmt"

	"github.com/buger/jsonparser"
)

const entryTypeFile = "file"

// Entry is one element of a remote file listing
type Entry struct {
	Name        string
	Type        string
	DownloadURL string
}

// ParseListing reads a JSON array of objects shaped like the GitHub contents API response.
// Only the fields "name", "type" and "download_url" are read; missing or null fields are left empty.
func ParseListing(raw []byte) ([]Entry, error) {
	entries := []Entry{}
	var entryErr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if entryErr != nil {
			return
		}
		if err != nil {
			entryErr = err
			return
		}
		if dataType != jsonparser.Object {
			entryErr = fmt.Errorf("unexpected listing entry of type %v at offset %d", dataType, offset)
			return
		}
		name, _ := jsonparser.GetString(value, "name")
		typ, _ := jsonparser.GetString(value, "type")
		dl, _ := jsonparser.GetString(value, "download_url")
		entries = append(entries, Entry{Name: name, Type: typ, DownloadURL: dl})
	})
	if err != nil {
		return nil, fmt.Errorf("invalid file listing: %w", err)
	}
	if entryErr != nil {
		return nil, fmt.Errorf("invalid file listing: %w", entryErr)
	}
	return entries, nil
}

func (e Entry) isFile() bool {
	return e.Type == "" || e.Type == entryTypeFile
}
