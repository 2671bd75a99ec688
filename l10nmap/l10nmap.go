// Package l10nmap reads and writes localization maps: JSON documents that
// map source file paths to objects of original string to translation.
//
// The package preserves key order exactly as found in the input so that
// regenerating a committed map produces minimal diffs. Values that are not
// translation objects pass through untouched.
package l10nmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is an ordered localization map.
type Document struct {
	files []*File
	index map[string]*File
}

// File is one file-path section of the map: an ordered list of
// original-to-translation entries, or an opaque non-object value.
type File struct {
	Path    string
	entries []*Entry
	raw     json.RawMessage // set when the value is not an object
}

// Entry is a single original string and its translation slot.
type Entry struct {
	Original string

	isString bool
	str      string
	isNull   bool
	raw      json.RawMessage // set when the value is neither string nor null
}

// Parse reads a localization map, preserving key order.
func Parse(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	t, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading localization map: %w", err)
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("localization map: top-level value must be an object")
	}

	doc := &Document{index: make(map[string]*File)}

	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading localization map: %w", err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("localization map: unexpected key token %v", kt)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("localization map: value for %q: %w", key, err)
		}

		file := &File{Path: key}
		if isObject(raw) {
			if err := file.parseEntries(raw); err != nil {
				return nil, fmt.Errorf("localization map: section %q: %w", key, err)
			}
		} else {
			file.raw = raw
		}

		doc.files = append(doc.files, file)
		doc.index[key] = file
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading localization map: %w", err)
	}

	return doc, nil
}

// ParseFile reads a localization map from a file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func (f *File) parseEntries(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return err
	}

	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", kt)
		}

		var vraw json.RawMessage
		if err := dec.Decode(&vraw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}

		e := &Entry{Original: key}
		trimmed := bytes.TrimLeft(vraw, " \t\r\n")
		switch {
		case len(trimmed) > 0 && trimmed[0] == '"':
			if err := json.Unmarshal(vraw, &e.str); err != nil {
				return fmt.Errorf("value for %q: %w", key, err)
			}
			e.isString = true
		case bytes.Equal(trimmed, []byte("null")):
			e.isNull = true
		default:
			e.raw = vraw
		}

		f.entries = append(f.entries, e)
	}

	_, err := dec.Token()
	return err
}

// Files returns the file sections in input order.
func (d *Document) Files() []*File {
	return d.files
}

// Lookup returns the section for a file path.
func (d *Document) Lookup(path string) (*File, bool) {
	f, ok := d.index[path]
	return f, ok
}

// Len returns the number of file sections.
func (d *Document) Len() int {
	return len(d.files)
}

// EmptyCount returns the number of empty translation slots across all
// sections.
func (d *Document) EmptyCount() int {
	n := 0
	for _, f := range d.files {
		for _, e := range f.entries {
			if e.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// IsMapping reports whether the section value is a translation object.
func (f *File) IsMapping() bool {
	return f.raw == nil
}

// Entries returns the section's entries in input order.
func (f *File) Entries() []*Entry {
	return f.entries
}

// IsEmpty reports whether the translation slot is unfilled: null or the
// empty string.
func (e *Entry) IsEmpty() bool {
	return e.isNull || (e.isString && e.str == "")
}

// Translation returns the current translation and whether the slot holds a
// string value.
func (e *Entry) Translation() (string, bool) {
	return e.str, e.isString
}

// SetTranslation fills the slot with a translated string.
func (e *Entry) SetTranslation(s string) {
	e.str = s
	e.isString = true
	e.isNull = false
	e.raw = nil
}

// Write serializes the document with two-space indentation, no ASCII
// escaping, the original key order, and a trailing newline.
func (d *Document) Write(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, f := range d.files {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		if err := writeJSONString(&buf, f.Path); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := f.write(&buf); err != nil {
			return err
		}
	}

	if len(d.files) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile serializes the document to a file.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (f *File) write(buf *bytes.Buffer) error {
	if f.raw != nil {
		return writeIndented(buf, f.raw, "  ")
	}

	buf.WriteByte('{')
	for i, e := range f.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		if err := writeJSONString(buf, e.Original); err != nil {
			return err
		}
		buf.WriteString(": ")
		switch {
		case e.isString:
			if err := writeJSONString(buf, e.str); err != nil {
				return err
			}
		case e.isNull:
			buf.WriteString("null")
		default:
			if err := writeIndented(buf, e.raw, "    "); err != nil {
				return err
			}
		}
	}
	if len(f.entries) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteByte('}')
	return nil
}

// writeJSONString encodes s without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// writeIndented re-indents a raw value to sit at the given prefix depth.
func writeIndented(buf *bytes.Buffer, raw json.RawMessage, prefix string) error {
	var tmp bytes.Buffer
	if err := json.Indent(&tmp, raw, prefix, "  "); err != nil {
		return err
	}
	buf.Write(tmp.Bytes())
	return nil
}
