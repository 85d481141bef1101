package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/stefanpenner/ninety/pkg/plan"
	"gopkg.in/yaml.v3"
)

// catalogDoc is the layout of catalog.yaml.
type catalogDoc struct {
	Actions []plan.ActionItem `yaml:"actions"`
}

// LoadCatalog reads a catalog override from path. A missing file yields
// the default catalog.
func LoadCatalog(path string) (*plan.Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return plan.DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(doc.Actions) == 0 {
		return nil, fmt.Errorf("catalog %s has no actions", path)
	}
	c, err := plan.NewCatalog(doc.Actions)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// WriteCatalog writes c to path in the layout LoadCatalog reads.
func WriteCatalog(path string, c *plan.Catalog) error {
	data, err := yaml.Marshal(catalogDoc{Actions: c.Items()})
	if err != nil {
		return fmt.Errorf("serializing catalog: %w", err)
	}
	return writeAtomic(path, data)
}
