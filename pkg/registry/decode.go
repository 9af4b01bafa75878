package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// Decode failures. They are attached to Decoded.Err and to log records; no
// caller ever receives them as a failure of List.
var (
	ErrMalformedStorage = errors.New("stored windows are not valid JSON")
	ErrInvalidShape     = errors.New("stored windows do not match the descriptor schema")
	ErrStorageWrite     = errors.New("writing windows to the store failed")
	ErrStorageRead      = errors.New("reading windows from the store failed")
	ErrBlankID          = errors.New("window descriptor has no id")
)

// DecodeStatus tags the outcome of decoding the persisted slot.
type DecodeStatus int

const (
	// Valid means Windows holds the persisted list.
	Valid DecodeStatus = iota
	// Missing means the slot has never been written.
	Missing
	// Malformed means the slot does not hold JSON.
	Malformed
	// InvalidShape means the JSON is not an array of descriptors.
	InvalidShape
	// Unreadable means the store failed to return the slot.
	Unreadable
)

func (s DecodeStatus) String() string {
	switch s {
	case Valid:
		return "valid"
	case Missing:
		return "missing"
	case Malformed:
		return "malformed"
	case InvalidShape:
		return "invalid-shape"
	case Unreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("DecodeStatus(%d)", int(s))
	}
}

// Decoded is the tagged result of Decode. Windows is non-nil only when
// Status is Valid; every other status means "treat as empty".
type Decoded struct {
	Status  DecodeStatus
	Windows []WindowDescriptor
	Err     error
}

// OK reports whether the slot decoded to a usable list.
func (d Decoded) OK() bool {
	return d.Status == Valid
}

// descriptorSchema accepts extra fields and absent title/url/kind, but every
// element must be an object with a non-empty string id.
const descriptorSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id":    {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "url":   {"type": "string"},
      "kind":  {"type": "string"}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(descriptorSchema))
})

// Decode validates raw against the descriptor schema and decodes it.
// present is false when the slot has no value at all.
func Decode(raw []byte, present bool) Decoded {
	if !present {
		return Decoded{Status: Missing}
	}
	if !json.Valid(raw) {
		return Decoded{Status: Malformed, Err: ErrMalformedStorage}
	}

	schema, err := compiledSchema()
	if err != nil {
		return Decoded{Status: InvalidShape, Err: fmt.Errorf("%w: compiling schema: %v", ErrInvalidShape, err)}
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Decoded{Status: Malformed, Err: fmt.Errorf("%w: %v", ErrMalformedStorage, err)}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Decoded{Status: InvalidShape, Err: fmt.Errorf("%w: %s", ErrInvalidShape, strings.Join(msgs, "; "))}
	}

	var windows []WindowDescriptor
	if err := json.Unmarshal(raw, &windows); err != nil {
		return Decoded{Status: InvalidShape, Err: fmt.Errorf("%w: %v", ErrInvalidShape, err)}
	}
	return Decoded{Status: Valid, Windows: dedupe(windows)}
}

// Encode serializes windows for the slot. A nil list encodes as [].
func Encode(windows []WindowDescriptor) ([]byte, error) {
	if windows == nil {
		windows = []WindowDescriptor{}
	}
	return json.Marshal(windows)
}

// dedupe keeps the last occurrence of each id, in the position of that last
// occurrence. Only a foreign writer can produce duplicates.
func dedupe(windows []WindowDescriptor) []WindowDescriptor {
	last := make(map[string]int, len(windows))
	for i, w := range windows {
		last[w.ID] = i
	}
	out := make([]WindowDescriptor, 0, len(last))
	for i, w := range windows {
		if last[w.ID] == i {
			out = append(out, w)
		}
	}
	return out
}
