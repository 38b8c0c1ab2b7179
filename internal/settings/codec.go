package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"
)

// Codec converts Settings to and from one on-disk format.
type Codec interface {
	// Name is the format name, also used as the file extension.
	Name() string
	Encode(s Settings) ([]byte, error)
	// Decode overlays the stored values onto s. Keys missing from data keep
	// the value already in s; unknown keys are ignored.
	Decode(data []byte, s *Settings) error
	// decodeGeneric parses data without a target type for schema checks.
	decodeGeneric(data []byte) (interface{}, error)
}

// CodecFor returns the codec registered under name.
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return yamlCodec{}, nil
	case "toml":
		return tomlCodec{}, nil
	case "json":
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported settings format %q (want yaml, toml or json)", name)
	}
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Encode(s Settings) ([]byte, error) {
	return yaml.Marshal(s)
}

func (yamlCodec) Decode(data []byte, s *Settings) error {
	return yaml.Unmarshal(data, s)
}

func (yamlCodec) decodeGeneric(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

type tomlCodec struct{}

func (tomlCodec) Name() string { return "toml" }

func (tomlCodec) Encode(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Decode(data []byte, s *Settings) error {
	_, err := toml.Decode(string(data), s)
	return err
}

func (tomlCodec) decodeGeneric(data []byte) (interface{}, error) {
	raw := map[string]interface{}{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Encode(s Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Decode(data []byte, s *Settings) error {
	return json.Unmarshal(data, s)
}

func (jsonCodec) decodeGeneric(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
