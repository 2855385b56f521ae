package io

import (
	"bytes"
	"encoding/json"
	stdio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gvmanaged/pkg/errors"
)

// Manifest formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists the supported manifest formats.
var Formats = []string{FormatTOML, FormatYAML, FormatJSON}

// Graph types.
const (
	TypeGraph   = "graph"
	TypeDiagram = "diagram"
)

// Manifest describes a graph.
type Manifest struct {
	Type      string         `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Wrap      int            `json:"wrap,omitempty" yaml:"wrap,omitempty" toml:"wrap,omitempty"`
	IconDir   string         `json:"icon_dir,omitempty" yaml:"icon_dir,omitempty" toml:"icon_dir,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs,omitempty"`
	NodeAttrs map[string]any `json:"node_attrs,omitempty" yaml:"node_attrs,omitempty" toml:"node_attrs,omitempty"`
	EdgeAttrs map[string]any `json:"edge_attrs,omitempty" yaml:"edge_attrs,omitempty" toml:"edge_attrs,omitempty"`
	Nodes     []NodeSpec     `json:"nodes,omitempty" yaml:"nodes,omitempty" toml:"nodes,omitempty"`
	Edges     []EdgeSpec     `json:"edges,omitempty" yaml:"edges,omitempty" toml:"edges,omitempty"`
	Chains    []string       `json:"chains,omitempty" yaml:"chains,omitempty" toml:"chains,omitempty"`
}

// NodeSpec describes one node. Ref defaults to Label.
type NodeSpec struct {
	Ref     string         `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref,omitempty"`
	Label   string         `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Kind    string         `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Package *string        `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs,omitempty"`
}

// EdgeSpec describes one edge between two node refs.
type EdgeSpec struct {
	From  string         `json:"from" yaml:"from" toml:"from"`
	To    string         `json:"to" yaml:"to" toml:"to"`
	Attrs map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs,omitempty"`
}

// FormatFromPath infers the manifest format from a file extension.
// It returns "" for unknown extensions.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return ""
}

// Load reads the manifest at path, choosing the decoder by extension.
func Load(path string) (*Manifest, error) {
	format := FormatFromPath(path)
	if format == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "cannot infer manifest format of %s (use .toml, .yaml, .yml or .json)", path)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "manifest %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	m, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return m, nil
}

// Decode reads a manifest in the given format from r. Unknown fields are
// rejected. Decode does not close r.
func Decode(r stdio.Reader, format string) (*Manifest, error) {
	if err := errors.ValidateFormat(format, Formats); err != nil {
		return nil, err
	}
	data, err := stdio.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read manifest")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty manifest")
	}

	var m Manifest
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown field %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	}
	return &m, nil
}
