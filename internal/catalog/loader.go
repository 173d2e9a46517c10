package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed icd10.json
var embeddedDataset []byte

// Decode reads a hierarchical ICD-10 dataset from r. The input encoding is
// detected and transcoded to UTF-8 before JSON decoding.
func Decode(r io.Reader) ([]Node, error) {
	utf8r, err := newUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting catalog encoding: %w", err)
	}

	var nodes []Node
	if err := json.NewDecoder(utf8r).Decode(&nodes); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return nodes, nil
}

// LoadFile builds an index from an external catalog file.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	nodes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	return NewIndex(nodes), nil
}

// Default builds an index from the embedded dataset.
func Default() (*Index, error) {
	nodes, err := Decode(bytes.NewReader(embeddedDataset))
	if err != nil {
		return nil, fmt.Errorf("loading embedded catalog: %w", err)
	}

	return NewIndex(nodes), nil
}

// Load builds the index from path when given, otherwise from the embedded
// dataset.
func Load(path string) (*Index, error) {
	if path != "" {
		return LoadFile(path)
	}

	return Default()
}
