package workout

import (
	"github.com/claude/trainlog/internal/catalog"
	"github.com/claude/trainlog/internal/models"
	"github.com/google/uuid"
)

// SetDraft holds one set's fields as raw form text. Nothing is validated
// until commit; the fallible conversion to models.Set happens in parse.go.
type SetDraft struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
	Memo   string `json:"memo"`
}

// EntryDraft is one in-progress exercise entry. BodyPart mirrors the catalog
// value for the current name and is empty while the name is unset or
// unmatched.
type EntryDraft struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	BodyPart models.BodyPart `json:"bodyPart"`
	Sets     []SetDraft      `json:"sets"`
}

// Builder accumulates draft entries for a not-yet-committed session. Draft
// state is transient: it is cleared on successful commit or explicit reset
// and never persisted.
type Builder struct {
	entries []EntryDraft
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddEntry appends a new empty entry draft with one empty set slot and
// returns its ID for targeted mutation.
func (b *Builder) AddEntry() string {
	id := uuid.NewString()
	b.entries = append(b.entries, EntryDraft{
		ID:   id,
		Sets: []SetDraft{{}},
	})
	return id
}

// RemoveEntry removes the draft entry with the given ID. Unknown IDs are a
// no-op, not an error.
func (b *Builder) RemoveEntry(entryID string) {
	for i, e := range b.entries {
		if e.ID == entryID {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return
		}
	}
}

// SetEntryExercise sets the entry's exercise name and resolves its body part
// through the catalog. Unmatched names leave the body part empty. Unknown
// entry IDs are a no-op.
func (b *Builder) SetEntryExercise(entryID, name string, cat *catalog.Catalog) {
	e := b.find(entryID)
	if e == nil {
		return
	}
	e.Name = name
	part, ok := cat.Lookup(name)
	if !ok {
		part = ""
	}
	e.BodyPart = part
}

// AddSet appends a new set draft to the entry, copying the previous set's
// weight text so repeated input is cheaper. Reps and memo start empty.
func (b *Builder) AddSet(entryID string) {
	e := b.find(entryID)
	if e == nil {
		return
	}
	var weight string
	if n := len(e.Sets); n > 0 {
		weight = e.Sets[n-1].Weight
	}
	e.Sets = append(e.Sets, SetDraft{Weight: weight})
}

// RemoveSet removes the set draft at index. The last remaining set slot is
// never removed; an entry being edited always keeps at least one.
func (b *Builder) RemoveSet(entryID string, index int) {
	e := b.find(entryID)
	if e == nil || len(e.Sets) <= 1 {
		return
	}
	if index < 0 || index >= len(e.Sets) {
		return
	}
	e.Sets = append(e.Sets[:index], e.Sets[index+1:]...)
}

// UpdateSetField sets the named field (weight, reps or memo) of one set
// draft to the given raw text. Unknown entry, index or field is a no-op.
func (b *Builder) UpdateSetField(entryID string, index int, field, value string) {
	e := b.find(entryID)
	if e == nil || index < 0 || index >= len(e.Sets) {
		return
	}
	switch field {
	case "weight":
		e.Sets[index].Weight = value
	case "reps":
		e.Sets[index].Reps = value
	case "memo":
		e.Sets[index].Memo = value
	}
}

// Entries returns a copy of the current draft entries.
func (b *Builder) Entries() []EntryDraft {
	out := make([]EntryDraft, len(b.entries))
	copy(out, b.entries)
	for i := range out {
		sets := make([]SetDraft, len(out[i].Sets))
		copy(sets, out[i].Sets)
		out[i].Sets = sets
	}
	return out
}

// Reset discards all draft state.
func (b *Builder) Reset() {
	b.entries = nil
}

// validate filters the draft entries into committed form: a set survives if
// weight and reps both parse to non-negative numbers, an entry survives if
// it has a name and at least one surviving set. The builder itself is left
// untouched so a failed commit preserves the draft for correction.
func (b *Builder) validate(date string) ([]models.ExerciseEntry, error) {
	if date == "" {
		return nil, ErrMissingDate
	}

	var entries []models.ExerciseEntry
	for _, e := range b.entries {
		if e.Name == "" {
			continue
		}
		var sets []models.Set
		for _, sd := range e.Sets {
			set, ok := parseSet(sd)
			if !ok {
				continue
			}
			sets = append(sets, set)
		}
		if len(sets) == 0 {
			continue
		}
		entries = append(entries, models.ExerciseEntry{
			Name:     e.Name,
			BodyPart: e.BodyPart,
			Sets:     sets,
		})
	}

	if len(entries) == 0 {
		return nil, ErrNoValidEntries
	}
	return entries, nil
}

func (b *Builder) find(entryID string) *EntryDraft {
	for i := range b.entries {
		if b.entries[i].ID == entryID {
			return &b.entries[i]
		}
	}
	return nil
}
