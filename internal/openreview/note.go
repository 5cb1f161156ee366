// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openreview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Note is a single note on a forum: the submission itself, an official
// review, or a comment. Only the fields the downloader reads are
// decoded.
type Note struct {
	ID          string      `json:"id"`
	Forum       string      `json:"forum"`
	ReplyTo     string      `json:"replyto"`
	Number      int         `json:"number"`
	Invitations []string    `json:"invitations"`
	Signatures  []string    `json:"signatures"`
	CDate       int64       `json:"cdate"`
	MDate       int64       `json:"mdate"`
	Content     NoteContent `json:"content"`
}

// ContentField is one named field of a note body.
type ContentField struct {
	Name  string
	Value string
}

// NoteContent holds a note's content fields in the exact order the
// service returned them. Review bodies are free-form author text, so
// values are preserved character for character: no entity decoding, no
// whitespace normalization, no touching of math delimiters.
type NoteContent struct {
	Fields []ContentField
}

// Get returns the value of the named field and whether it exists.
func (c NoteContent) Get(name string) (string, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether the named field exists.
func (c NoteContent) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Names returns the field names in service order.
func (c NoteContent) Names() []string {
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}

// UnmarshalJSON decodes a content object by walking its tokens so that
// field order survives. Encoding through a Go map would shuffle the
// fields and break the service-order guarantee.
func (c *NoteContent) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("content is not a JSON object")
	}

	c.Fields = c.Fields[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading content key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("content key is not a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("reading content field %s: %w", key, err)
		}
		value, err := flattenValue(raw)
		if err != nil {
			return fmt.Errorf("content field %s: %w", key, err)
		}
		c.Fields = append(c.Fields, ContentField{Name: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	return nil
}

// flattenValue turns one content field into display text. API v2 wraps
// every field as {"value": ...}; the wrapper is removed. Bare v1 values
// pass straight through.
func flattenValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}

	if raw[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", err
		}
		if inner, ok := obj["value"]; ok {
			return flattenScalar(inner)
		}
		// An object without the value envelope keeps its literal text.
		return string(raw), nil
	}
	return flattenScalar(raw)
}

// flattenScalar renders a JSON value as text. Strings keep their exact
// character content; numbers and booleans keep their literal source
// bytes rather than a reformatted round trip; arrays join with ", ";
// null renders empty.
func flattenScalar(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return "", err
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			s, err := flattenScalar(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	case 'n':
		return "", nil
	default:
		return string(raw), nil
	}
}
