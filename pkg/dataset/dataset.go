package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/citeforest/pkg/errors"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Dataset is the decoded content of one dataset file.
type Dataset struct {
	Affiliations []Affiliation `json:"affiliations" toml:"affiliation"`
	Publications []Publication `json:"publications" toml:"publication"`
}

// Affiliation is one affiliation entry.
type Affiliation struct {
	ID   string `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`
	X    int    `json:"x" toml:"x"`
	Y    int    `json:"y" toml:"y"`
}

// Publication is one publication entry. Parent is the id of the publication
// it cites, if any.
type Publication struct {
	ID           uint64   `json:"id" toml:"id"`
	Title        string   `json:"title" toml:"title"`
	Year         uint16   `json:"year" toml:"year"`
	Affiliations []string `json:"affiliations,omitempty" toml:"affiliations,omitempty"`
	Parent       *uint64  `json:"parent,omitempty" toml:"parent,omitempty"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset extension %q (want .toml or .json)", filepath.Ext(path))
	}
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatJSON:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", s)
	}
}

// Read decodes a dataset from r in the given format. Read does not close r.
func Read(r io.Reader, format Format) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var ds Dataset
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &ds); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
	return &ds, nil
}

// ReadFile reads the dataset at path, choosing the format from its extension.
func ReadFile(path string) (*Dataset, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// WriteJSON encodes ds as indented JSON. The output can be read back with
// [Read] using [FormatJSON].
func WriteJSON(w io.Writer, ds *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes ds as TOML.
func WriteTOML(w io.Writer, ds *Dataset) error {
	if err := toml.NewEncoder(w).Encode(ds); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes ds in the given format.
func Write(w io.Writer, ds *Dataset, format Format) error {
	switch format {
	case FormatTOML:
		return WriteTOML(w, ds)
	case FormatJSON:
		return WriteJSON(w, ds)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
}
