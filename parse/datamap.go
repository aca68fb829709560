package parse

// Package parse is the front door for building mmCIF object trees from
// serialized data-map input.
//
// Scope:
// - Decoding YAML (and JSON, which YAML subsumes) into the nested
//   datablock -> category -> item -> value mapping
// - Handing that mapping to the mmcif import routine
//
// Non-goals (by design):
// - Tokenizing raw CIF text
// - Schema / dictionary validation

import (
	"fmt"
	"io"

	"github.com/dzjyyds666/cifq/parse/mmcif"
	"github.com/goccy/go-yaml"
)

// DecodeDataMap reads YAML or JSON from r and returns the nested
// datablock -> category -> item -> value mapping the mmcif import
// consumes.
func DecodeDataMap(r io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data map: %w", err)
	}
	m := map[string]any{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode data map: %w", err)
	}
	return m, nil
}

// BuildFile decodes a data map from r and imports it into a fresh File.
// path is only a label for diagnostics. The error covers undecodable
// input; malformed branches inside a decodable map are logged and
// skipped by the import itself.
func BuildFile(r io.Reader, path string) (*mmcif.File, error) {
	m, err := DecodeDataMap(r)
	if err != nil {
		return nil, err
	}
	f := mmcif.NewFile(path)
	f.ImportDataMap(m)
	return f, nil
}
