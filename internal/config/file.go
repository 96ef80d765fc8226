package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults are flag defaults read from a YAML file. Flags given on the
// command line override them.
type Defaults struct {
	LineNumber      bool `yaml:"line_number"`
	FileNameOnly    bool `yaml:"file_name_only"`
	CaseInsensitive bool `yaml:"case_insensitive"`
	Invert          bool `yaml:"invert"`
	EntireLine      bool `yaml:"entire_line"`

	MaxProcs  int  `yaml:"max_procs"`
	NullTerm  bool `yaml:"null_term"`
	JSONLines bool `yaml:"jsonl"`
	Verbose   bool `yaml:"verbose"`
}

// LoadFile decodes the defaults file at path. Unknown keys are an error;
// an empty file yields zero defaults.
func LoadFile(path string) (*Defaults, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	var d Defaults
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &d, nil
}
