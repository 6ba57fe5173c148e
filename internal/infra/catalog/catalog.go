// Package catalog loads drag-source categories from a YAML file.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskring/internal/domain"
)

// Ensure Catalog implements domain.CategoryProvider.
var _ domain.CategoryProvider = (*Catalog)(nil)

// file is the on-disk layout.
type file struct {
	Categories []entry `yaml:"categories"`
}

// entry is one category as written in YAML. Duration is a Go duration
// string such as "45m"; empty means the one-hour default.
type entry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Color    string `yaml:"color"`
	Icon     string `yaml:"icon,omitempty"`
	Duration string `yaml:"duration,omitempty"`
}

// Catalog is an immutable, ordered set of categories.
type Catalog struct {
	byID map[string]int
	list []domain.Category
}

// Defaults returns the built-in categories used when no file exists.
func Defaults() []domain.Category {
	return []domain.Category{
		{ID: "work", Name: "Work", Color: "#74B9FF", Icon: "W", DefaultDuration: time.Hour},
		{ID: "meeting", Name: "Meeting", Color: "#A29BFE", Icon: "M", DefaultDuration: 30 * time.Minute},
		{ID: "exercise", Name: "Exercise", Color: "#00B894", Icon: "E", DefaultDuration: 45 * time.Minute},
		{ID: "meal", Name: "Meal", Color: "#FDCB6E", Icon: "F", DefaultDuration: 30 * time.Minute},
		{ID: "study", Name: "Study", Color: "#E17055", Icon: "S", DefaultDuration: 90 * time.Minute},
		{ID: "rest", Name: "Rest", Color: "#81ECEC", Icon: "R"},
	}
}

// New builds a catalog from cats. IDs must be non-empty and unique.
func New(cats []domain.Category) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[string]int, len(cats)),
		list: slices.Clone(cats),
	}
	for i, cat := range c.list {
		if cat.ID == "" {
			return nil, fmt.Errorf("category %d: empty id", i+1)
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("category %q: duplicate id", cat.ID)
		}
		if cat.DefaultDuration < 0 {
			return nil, fmt.Errorf("category %q: negative duration", cat.ID)
		}
		c.byID[cat.ID] = i
	}
	return c, nil
}

// Load reads the catalog at path. A missing file yields Defaults.
func Load(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(Defaults())
	}
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	return Parse(content)
}

// Parse decodes a YAML catalog.
func Parse(content []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	cats := make([]domain.Category, 0, len(f.Categories))
	for _, e := range f.Categories {
		cat := domain.Category{
			ID:    e.ID,
			Name:  e.Name,
			Color: e.Color,
			Icon:  e.Icon,
		}
		if cat.Name == "" {
			cat.Name = e.ID
		}
		if e.Duration != "" {
			d, err := time.ParseDuration(e.Duration)
			if err != nil {
				return nil, fmt.Errorf("category %q: duration: %w", e.ID, err)
			}
			cat.DefaultDuration = d
		}
		cats = append(cats, cat)
	}
	return New(cats)
}

// Write encodes cats as YAML at path, creating parent directories.
func Write(path string, cats []domain.Category) error {
	f := file{Categories: make([]entry, 0, len(cats))}
	for _, cat := range cats {
		e := entry{ID: cat.ID, Name: cat.Name, Color: cat.Color, Icon: cat.Icon}
		if cat.DefaultDuration > 0 {
			e.Duration = cat.DefaultDuration.String()
		}
		f.Categories = append(f.Categories, e)
	}

	content, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

// Categories returns every category in file order.
func (c *Catalog) Categories() ([]domain.Category, error) {
	return slices.Clone(c.list), nil
}

// Category returns a category by id.
func (c *Catalog) Category(id string) (domain.Category, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Category{}, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, id)
	}
	return c.list[i], nil
}
