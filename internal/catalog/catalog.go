// Package catalog holds the exercise name → body part mapping. The catalog
// seeds a built-in default set on first run and only ever grows: there is no
// rename or delete operation.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/claude/trainlog/internal/models"
)

var (
	// ErrEmptyName is returned when an exercise name is empty after trimming.
	ErrEmptyName = errors.New("exercise name is empty")
	// ErrDuplicateName is returned when the exact name is already cataloged.
	ErrDuplicateName = errors.New("exercise name already exists")
	// ErrInvalidBodyPart is returned for a category outside the fixed six.
	ErrInvalidBodyPart = errors.New("invalid body part")
)

// defaultExercises is the seed mapping used on first run.
var defaultExercises = map[string]models.BodyPart{
	"ベンチプレス":          models.Chest,
	"インクラインダンベルプレス":   models.Chest,
	"ダンベルフライ":         models.Chest,
	"チェストプレス":         models.Chest,
	"スクワット":           models.Legs,
	"レッグプレス":          models.Legs,
	"レッグカール":          models.Legs,
	"レッグエクステンション":     models.Legs,
	"カーフレイズ":          models.Legs,
	"デッドリフト":          models.Back,
	"ラットプルダウン":        models.Back,
	"ベントオーバーロウ":       models.Back,
	"シーテッドロウ":         models.Back,
	"ショルダープレス":        models.Shoulders,
	"サイドレイズ":          models.Shoulders,
	"フロントレイズ":         models.Shoulders,
	"リアレイズ":           models.Shoulders,
	"バーベルカール":         models.Arms,
	"ダンベルカール":         models.Arms,
	"ハンマーカール":         models.Arms,
	"トライセプスエクステンション":  models.Arms,
	"トライセプスプッシュダウン":   models.Arms,
	"クランチ":            models.Core,
	"レッグレイズ":          models.Core,
	"プランク":            models.Core,
}

// Catalog maps exercise names to body parts.
type Catalog struct {
	entries map[string]models.BodyPart
}

// NewDefault returns a catalog seeded with the built-in exercises.
func NewDefault() *Catalog {
	entries := make(map[string]models.BodyPart, len(defaultExercises))
	for name, part := range defaultExercises {
		entries[name] = part
	}
	return &Catalog{entries: entries}
}

// FromMap returns a catalog holding exactly the given mapping, replacing the
// defaults verbatim. Used when loading a persisted or imported catalog.
func FromMap(m map[string]models.BodyPart) *Catalog {
	entries := make(map[string]models.BodyPart, len(m))
	for name, part := range m {
		entries[name] = part
	}
	return &Catalog{entries: entries}
}

// Add inserts a new exercise. The name must be non-empty after trimming,
// not already present (exact match), and the part must be one of the fixed
// six. On failure the catalog is unchanged.
func (c *Catalog) Add(name string, part models.BodyPart) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !part.Valid() {
		return ErrInvalidBodyPart
	}
	if _, exists := c.entries[name]; exists {
		return ErrDuplicateName
	}
	c.entries[name] = part
	return nil
}

// Lookup returns the body part for name. Absence is not an error; callers
// treat an unmatched exercise as uncategorized.
func (c *Catalog) Lookup(name string) (models.BodyPart, bool) {
	part, ok := c.entries[name]
	return part, ok
}

// Len returns the number of cataloged exercises.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Map returns a copy of the full mapping, for persistence and export.
func (c *Catalog) Map() map[string]models.BodyPart {
	m := make(map[string]models.BodyPart, len(c.entries))
	for name, part := range c.entries {
		m[name] = part
	}
	return m
}

// Group is the set of exercise names under one body part.
type Group struct {
	Part  models.BodyPart `json:"bodyPart"`
	Names []string        `json:"names"`
}

// ListByPart returns all six body parts in display order with their member
// names sorted alphabetically. The persisted form is a flat map, so sorting
// is what keeps the listing deterministic across restarts.
func (c *Catalog) ListByPart() []Group {
	groups := make([]Group, 0, len(models.AllBodyParts))
	for _, part := range models.AllBodyParts {
		g := Group{Part: part, Names: []string{}}
		for name, p := range c.entries {
			if p == part {
				g.Names = append(g.Names, name)
			}
		}
		sort.Strings(g.Names)
		groups = append(groups, g)
	}
	return groups
}
