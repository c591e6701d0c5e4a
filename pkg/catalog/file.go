package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a catalog from a .json, .yaml/.yml or .html file and normalizes it
func LoadFile(path string) (Catalog, error) {
	var (
		catalog Catalog
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		catalog, err = FromJson(path)
	case ".yaml", ".yml":
		catalog, err = FromYaml(path)
	case ".html", ".htm":
		var file *os.File
		if file, err = os.Open(path); err != nil {
			return Catalog{}, fmt.Errorf("cannot open catalog file: %w", err)
		}
		defer file.Close()
		catalog, err = ParseHtml(file)
	default:
		return Catalog{}, fmt.Errorf("unsupported catalog format: %v", path)
	}

	if err != nil {
		return Catalog{}, err
	}
	return Normalize(catalog), nil
}

func FromJson(path string) (Catalog, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var document map[string]any
	if err := json.Unmarshal(bytes, &document); err != nil {
		return Catalog{}, fmt.Errorf("cannot parse catalog json: %w", err)
	}
	return decode(document)
}

func FromYaml(path string) (Catalog, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var document map[string]any
	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return Catalog{}, fmt.Errorf("cannot parse catalog yaml: %w", err)
	}
	return decode(document)
}

func decode(document map[string]any) (Catalog, error) {
	var catalog Catalog
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       model.DayDecodeHook,
		WeaklyTypedInput: true,
		Result:           &catalog,
	})
	if err != nil {
		return Catalog{}, err
	}
	if err := decoder.Decode(document); err != nil {
		return Catalog{}, fmt.Errorf("cannot decode catalog: %w", err)
	}
	return catalog, nil
}
