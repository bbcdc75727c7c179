package persist

import (
	"encoding/json"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Supported codec names.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// record is the on-disk shape of a task. ID is optional so that lists
// written before ids existed still load.
type record struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Codec turns a record list into a blob and back.
type Codec interface {
	Name() string
	Ext() string
	encode(records []record) ([]byte, error)
	decode(data []byte) ([]record, error)
}

// CodecFor returns the codec registered under name (case-insensitive).
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatJSON:
		return JSON, nil
	case FormatYAML, "yml":
		return YAML, nil
	default:
		return nil, fmt.Errorf("unsupported data format: %s (want json or yaml)", name)
	}
}

var (
	// JSON stores tasks as a JSON array of records.
	JSON Codec = jsonCodec{}
	// YAML stores tasks as a YAML sequence of records.
	YAML Codec = yamlCodec{}
)

type jsonCodec struct{}

func (jsonCodec) Name() string { return FormatJSON }
func (jsonCodec) Ext() string  { return ".json" }

func (jsonCodec) encode(records []record) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

func (jsonCodec) decode(data []byte) ([]record, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return FormatYAML }
func (yamlCodec) Ext() string  { return ".yaml" }

func (yamlCodec) encode(records []record) ([]byte, error) {
	return yaml.Marshal(records)
}

func (yamlCodec) decode(data []byte) ([]record, error) {
	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
