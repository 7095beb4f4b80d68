package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// rawField is one member of a JSON object, value bytes kept verbatim.
type rawField struct {
	key   string
	value json.RawMessage
}

// MigrateRaw repairs a cached snapshot to the current shape.
//
// Each missing top-level section is filled with its default, as is a
// missing contact.mapUrls. Members that are present keep their exact
// bytes, including unknown fields. A member holding null, false, 0 or ""
// counts as missing. Absent or malformed input yields the full defaults.
// The returned flag reports whether anything was filled in; when it is
// false the input slice is returned unchanged.
func MigrateRaw(raw []byte) ([]byte, bool) {
	fields, err := decodeObject(raw)
	if err != nil {
		return encodeDefaults(), true
	}

	defaults := map[Section]any{
		SectionAbout:        DefaultAbout(),
		SectionProjects:     DefaultProjects(),
		SectionTestimonials: DefaultTestimonials(),
		SectionContact:      DefaultContact(),
	}

	changed := false
	for _, section := range AllSections() {
		if fillMissing(&fields, string(section), defaults[section]) {
			changed = true
		}
	}

	idx := lastIndex(fields, string(SectionContact))
	if contact, err := decodeObject(fields[idx].value); err == nil {
		if fillMissing(&contact, "mapUrls", DefaultMapURLs()) {
			fields[idx].value = encodeObject(contact)
			changed = true
		}
	}

	if !changed {
		return raw, false
	}
	return encodeObject(fields), true
}

// Migrate returns the typed snapshot for a cached blob.
// It never fails: a section that cannot be decoded into its typed form is
// replaced by its default in the returned value.
func Migrate(raw []byte) Snapshot {
	migrated, _ := MigrateRaw(raw)
	fields, err := decodeObject(migrated)
	if err != nil {
		return DefaultSnapshot()
	}

	snap := DefaultSnapshot()
	for _, f := range fields {
		switch Section(f.key) {
		case SectionAbout:
			var about About
			if json.Unmarshal(f.value, &about) == nil {
				snap.About = about
			}
		case SectionProjects:
			var projects []Project
			if json.Unmarshal(f.value, &projects) == nil {
				snap.Projects = nonNil(projects)
			}
		case SectionTestimonials:
			var testimonials []Testimonial
			if json.Unmarshal(f.value, &testimonials) == nil {
				snap.Testimonials = nonNil(testimonials)
			}
		case SectionContact:
			var contact Contact
			if json.Unmarshal(f.value, &contact) == nil {
				contact.MapURLs = nonNil(contact.MapURLs)
				snap.Contact = contact
			}
		}
	}
	return snap
}

// EncodeSnapshot serialises a snapshot in its cached form.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return encodeJSON(s)
}

// ReplaceSection returns raw with one top-level member replaced by value.
// Other members keep their exact bytes. Malformed input is migrated first.
func ReplaceSection(raw []byte, section Section, value any) ([]byte, error) {
	encoded, err := encodeJSON(value)
	if err != nil {
		return nil, err
	}

	migrated, _ := MigrateRaw(raw)
	fields, err := decodeObject(migrated)
	if err != nil {
		return nil, err
	}

	if idx := lastIndex(fields, string(section)); idx >= 0 {
		fields[idx].value = encoded
	} else {
		fields = append(fields, rawField{key: string(section), value: encoded})
	}
	return encodeObject(fields), nil
}

// fillMissing sets key to def when it is absent or falsy.
// A falsy member is replaced in place so member order is kept.
func fillMissing(fields *[]rawField, key string, def any) bool {
	idx := lastIndex(*fields, key)
	if idx >= 0 && !isFalsy((*fields)[idx].value) {
		return false
	}

	encoded, err := encodeJSON(def)
	if err != nil {
		return false
	}
	if idx >= 0 {
		(*fields)[idx].value = encoded
	} else {
		*fields = append(*fields, rawField{key: key, value: encoded})
	}
	return true
}

func isFalsy(v json.RawMessage) bool {
	switch string(bytes.TrimSpace(v)) {
	case "null", "false", "0", `""`:
		return true
	default:
		return false
	}
}

// lastIndex mirrors JSON.parse semantics where the last duplicate wins.
func lastIndex(fields []rawField, key string) int {
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i].key == key {
			return i
		}
	}
	return -1
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var errNotObject = errors.New("not a JSON object")

// decodeObject splits a JSON object into its members in document order.
func decodeObject(raw []byte) ([]rawField, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	fields := []rawField{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, rawField{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errNotObject
	}
	return fields, nil
}

// encodeObject writes members back out without re-encoding their values.
func encodeObject(fields []rawField) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := encodeJSON(f.key)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.value)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func encodeDefaults() []byte {
	out, _ := encodeJSON(DefaultSnapshot())
	return out
}

// encodeJSON marshals without HTML escaping so URLs stay readable.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
