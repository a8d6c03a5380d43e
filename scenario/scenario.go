// Package scenario loads a canned sequence of REPL command lines from
// a YAML file, so a full run can be driven non-interactively and
// reproducibly (SPEC_FULL.md §10). Grounded on the YAML-backed config
// loading pattern used across the retrieval pack for file-based
// settings.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one canned REPL command line: "add 5", "wait 100000", etc.
type Step struct {
	Cmd string `yaml:"cmd"`
	Arg string `yaml:"arg,omitempty"`
}

// Line renders the step back into the whitespace-separated form the
// REPL's stdin loop expects, so loading a scenario and typing it by
// hand are indistinguishable to the REPL.
func (s Step) Line() string {
	if s.Arg == "" {
		return s.Cmd
	}
	return s.Cmd + " " + s.Arg
}

// File is the top-level shape of a scenario YAML document: an ordered
// list of steps.
type File struct {
	Steps []Step `yaml:"steps"`
}

// Load reads and parses a scenario file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return f, nil
}
