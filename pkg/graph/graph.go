package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Element Serialization API
// =============================================================================

// MarshalElements converts elements to indented JSON bytes.
func MarshalElements(elems []Element) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteElements(elems, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalElements parses JSON bytes into elements and validates them.
func UnmarshalElements(data []byte) ([]Element, error) {
	return ReadElements(bytes.NewReader(data))
}

// WriteElements writes elements as indented JSON to w.
func WriteElements(elems []Element, w io.Writer) error {
	if elems == nil {
		elems = []Element{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(elems); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadElements decodes and validates a JSON element list from r.
func ReadElements(r io.Reader) ([]Element, error) {
	var elems []Element
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := Validate(elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// WriteElementsFile writes elements to a JSON file.
// The file is created with 0644 permissions.
func WriteElementsFile(elems []Element, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteElements(elems, f)
}

// ReadElementsFile reads and validates a JSON element file.
func ReadElementsFile(path string) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadElements(f)
}
