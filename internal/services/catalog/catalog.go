package catalog

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// Catalog is the fixed set of clues for a hunt. It is immutable once built
// and safe for concurrent use.
type Catalog struct {
	clues map[model.ClueID]model.Clue
	order []model.ClueID
}

// New builds a catalog from the given clues, preserving their order.
// Keywords are stored lowercase.
func New(clues []model.Clue) (*Catalog, error) {
	if len(clues) == 0 {
		return nil, model.ErrEmptyCatalog
	}

	c := &Catalog{
		clues: make(map[model.ClueID]model.Clue, len(clues)),
		order: make([]model.ClueID, 0, len(clues)),
	}

	for _, clue := range clues {
		if clue.ID == "" {
			return nil, fmt.Errorf("%w: missing id", model.ErrInvalidClue)
		}
		keyword := strings.ToLower(strings.TrimSpace(clue.Keyword))
		if keyword == "" {
			return nil, fmt.Errorf("%w: %s has no keyword", model.ErrInvalidClue, clue.ID)
		}
		if _, exists := c.clues[clue.ID]; exists {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicateClue, clue.ID)
		}

		clue.Keyword = keyword
		c.clues[clue.ID] = clue
		c.order = append(c.order, clue.ID)
	}

	return c, nil
}

// file is the on-disk YAML layout of a catalog
type file struct {
	Clues []model.Clue `yaml:"clues"`
}

// LoadFile reads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	return New(f.Clues)
}

// Lookup returns the clue with the given id
func (c *Catalog) Lookup(id model.ClueID) (model.Clue, error) {
	clue, ok := c.clues[id]
	if !ok {
		return model.Clue{}, fmt.Errorf("%w: %q", model.ErrClueNotFound, id)
	}
	return clue, nil
}

// IDs returns every clue id in catalog order
func (c *Catalog) IDs() []model.ClueID {
	return slices.Clone(c.order)
}

// Size returns the number of clues
func (c *Catalog) Size() int {
	return len(c.order)
}
