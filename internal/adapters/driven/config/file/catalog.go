package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// catalogEntry is one metric definition as written in a catalog file.
type catalogEntry struct {
	Name     string `yaml:"name" toml:"name"`
	Pattern  string `yaml:"pattern" toml:"pattern"`
	Category string `yaml:"category" toml:"category"`
}

// catalogFile is the root of a catalog file:
//
//	metrics:
//	  - name: Order Book
//	    pattern: 'Order Book\s*(\d+\.\d+)\s*Cr\.'
//	    category: Operational
type catalogFile struct {
	Metrics []catalogEntry `yaml:"metrics" toml:"metrics"`
}

// LoadCatalog reads metric definitions from a YAML (.yaml, .yml) or TOML
// (.toml) file. Entries are returned in file order and are not validated
// beyond requiring a name.
func LoadCatalog(path string) ([]domain.MetricDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf catalogFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cf)
	case ".toml":
		err = toml.Unmarshal(data, &cf)
	default:
		return nil, fmt.Errorf("%w: catalog file %s", domain.ErrUnsupportedType, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	defs := make([]domain.MetricDefinition, 0, len(cf.Metrics))
	for i, e := range cf.Metrics {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("%w: entry %d in %s has no name", domain.ErrInvalidInput, i+1, path)
		}
		defs = append(defs, domain.MetricDefinition{Name: e.Name, Pattern: e.Pattern, Category: e.Category})
	}
	return defs, nil
}

// WriteCatalog writes definitions as a YAML catalog file that LoadCatalog
// can read back.
func WriteCatalog(path string, defs []domain.MetricDefinition) error {
	cf := catalogFile{Metrics: make([]catalogEntry, len(defs))}
	for i, d := range defs {
		cf.Metrics[i] = catalogEntry{Name: d.Name, Pattern: d.Pattern, Category: d.Category}
	}

	data, err := yaml.Marshal(&cf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
