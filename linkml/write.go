package linkml

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
)

// Marshal renders the schema as a YAML document.
func Marshal(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, errors.Wrap(err, "marshal schema")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "marshal schema")
	}
	return buf.Bytes(), nil
}

// Write serializes the schema to w.
func Write(w io.Writer, s *Schema) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write schema")
	}
	return nil
}

// WriteFile writes the schema document to path.
func WriteFile(path string, s *Schema) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write schema file %s", path)
	}
	return nil
}
