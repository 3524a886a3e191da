package types

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
)

// ID identifies a record of the HR API. The API may send ids as JSON
// numbers or strings; both decode to the same text, which is also what
// appears in portal URLs.
type ID string

func (id ID) String() string {
	return string(id)
}

// IsZero reports an absent id. The API never issues 0.
func (id ID) IsZero() bool {
	return id == "" || id == "0"
}

// PathSegment is the id escaped for use inside a URL path.
func (id ID) PathSegment() string {
	return url.PathEscape(string(id))
}

func (id ID) numeric() bool {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON writes integer ids as numbers and anything else as a string,
// so requests echo ids back in the shape the API used.
func (id ID) MarshalJSON() ([]byte, error) {
	switch {
	case id == "":
		return []byte("null"), nil
	case id.numeric():
		return []byte(id), nil
	default:
		return json.Marshal(string(id))
	}
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decode id")
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "decode id %s", data)
	}
	*id = ID(n.String())
	return nil
}

// ParseID trims raw into an ID; blank input is an error.
func ParseID(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty id")
	}
	return ID(raw), nil
}
