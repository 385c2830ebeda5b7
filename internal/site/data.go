package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadData decodes every YAML file in dir into a map keyed by file name
// without extension, e.g. data/social.yaml becomes Site.Data.social.
// A missing data directory is not an error.
func loadData(dir string) (map[string]any, error) {
	data := map[string]any{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read data file %s: %w", e.Name(), err)
		}
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode data file %s: %w", e.Name(), err)
		}
		data[strings.TrimSuffix(e.Name(), ext)] = v
	}
	return data, nil
}
