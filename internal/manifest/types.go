package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileName is the manifest file name inside a package directory.
const FileName = "package.json"

// PackageManifest is the subset of package.json written for scaffolded packages.
// Field order here is the key order on disk.
type PackageManifest struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Private bool    `json:"private"`
	Main    string  `json:"main,omitempty"`
	Types   string  `json:"types,omitempty"`
	Scripts Scripts `json:"scripts,omitempty"`
}

// Script is one lifecycle script entry.
type Script struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
}

// Scripts is an ordered script table. It encodes as a JSON object whose keys
// keep slice order, unlike a Go map.
type Scripts []Script

// Lookup returns the command for name.
func (s Scripts) Lookup(name string) (string, bool) {
	for _, sc := range s {
		if sc.Name == name {
			return sc.Command, true
		}
	}
	return "", false
}

// MarshalJSON implements json.Marshaler.
func (s Scripts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(sc.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(sc.Command)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (s *Scripts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("scripts: expected object, got %v", tok)
	}

	var out Scripts
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var cmd string
		if err := dec.Decode(&cmd); err != nil {
			return fmt.Errorf("scripts.%s: %w", key, err)
		}
		out = append(out, Script{Name: key, Command: cmd})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
