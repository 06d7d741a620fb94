package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// file is the on-disk layout shared by every catalog format.
type file struct {
	Apps []Entry `yaml:"apps" toml:"apps" json:"apps"`
}

// Decode parses catalog data in the format named by ext (".yaml", ".yml",
// ".toml" or ".json").
func Decode(ext string, data []byte) ([]Entry, error) {
	var f file
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".json":
		err = sonic.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s parse error: %w", strings.TrimPrefix(ext, "."), err)
	}
	return f.Apps, nil
}

// decodeFile decodes path by its extension.
func decodeFile(path string, data []byte) ([]Entry, error) {
	return Decode(filepath.Ext(path), data)
}
