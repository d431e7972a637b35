package workout

import (
	"errors"
	"testing"

	"github.com/claude/trainlog/internal/catalog"
	"github.com/claude/trainlog/internal/models"
)

func TestBuilderAddEntry(t *testing.T) {
	b := NewBuilder()
	id := b.AddEntry()
	if id == "" {
		t.Fatal("AddEntry returned empty ID")
	}

	entries := b.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if len(entries[0].Sets) != 1 {
		t.Errorf("new entry sets = %d, want 1 empty slot", len(entries[0].Sets))
	}
	if entries[0].Name != "" || entries[0].BodyPart != "" {
		t.Errorf("new entry not empty: %+v", entries[0])
	}
}

func TestBuilderSetEntryExercise(t *testing.T) {
	cat := catalog.NewDefault()
	b := NewBuilder()
	id := b.AddEntry()

	b.SetEntryExercise(id, "スクワット", cat)
	e := b.Entries()[0]
	if e.Name != "スクワット" {
		t.Errorf("name = %q", e.Name)
	}
	if e.BodyPart != models.Legs {
		t.Errorf("bodyPart = %q, want %q", e.BodyPart, models.Legs)
	}

	// A name outside the catalog keeps the entry but clears the body part.
	b.SetEntryExercise(id, "未登録の種目", cat)
	e = b.Entries()[0]
	if e.Name != "未登録の種目" {
		t.Errorf("name = %q", e.Name)
	}
	if e.BodyPart != "" {
		t.Errorf("bodyPart = %q, want empty", e.BodyPart)
	}

	// Unknown entry ID is a no-op.
	b.SetEntryExercise("nope", "スクワット", cat)
	if len(b.Entries()) != 1 {
		t.Error("no-op mutation changed entry count")
	}
}

// TestBuilderAddSetCopiesWeight verifies a new set slot inherits the previous
// set's weight text while reps and memo start empty.
func TestBuilderAddSetCopiesWeight(t *testing.T) {
	b := NewBuilder()
	id := b.AddEntry()
	b.UpdateSetField(id, 0, "weight", "60")
	b.UpdateSetField(id, 0, "reps", "10")
	b.UpdateSetField(id, 0, "memo", "felt heavy")

	b.AddSet(id)
	sets := b.Entries()[0].Sets
	if len(sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(sets))
	}
	if sets[1].Weight != "60" {
		t.Errorf("copied weight = %q, want 60", sets[1].Weight)
	}
	if sets[1].Reps != "" || sets[1].Memo != "" {
		t.Errorf("reps/memo should start empty: %+v", sets[1])
	}
}

func TestBuilderRemoveSet(t *testing.T) {
	b := NewBuilder()
	id := b.AddEntry()

	// Refuses to remove the last remaining slot.
	b.RemoveSet(id, 0)
	if len(b.Entries()[0].Sets) != 1 {
		t.Fatal("last set slot was removed")
	}

	b.AddSet(id)
	b.UpdateSetField(id, 0, "reps", "first")
	b.UpdateSetField(id, 1, "reps", "second")

	// Out-of-range indexes are no-ops.
	b.RemoveSet(id, 5)
	b.RemoveSet(id, -1)
	if len(b.Entries()[0].Sets) != 2 {
		t.Fatal("out-of-range remove changed set count")
	}

	b.RemoveSet(id, 0)
	sets := b.Entries()[0].Sets
	if len(sets) != 1 || sets[0].Reps != "second" {
		t.Errorf("sets after remove = %+v, want only the second", sets)
	}
}

func TestBuilderRemoveEntry(t *testing.T) {
	b := NewBuilder()
	first := b.AddEntry()
	second := b.AddEntry()

	b.RemoveEntry(first)
	entries := b.Entries()
	if len(entries) != 1 || entries[0].ID != second {
		t.Fatalf("entries after remove = %+v", entries)
	}

	b.RemoveEntry("unknown")
	if len(b.Entries()) != 1 {
		t.Error("removing unknown ID changed entries")
	}
}

// TestBuilderEntriesIsCopy verifies mutating the returned slice never touches
// the builder's internal state.
func TestBuilderEntriesIsCopy(t *testing.T) {
	b := NewBuilder()
	id := b.AddEntry()
	b.UpdateSetField(id, 0, "weight", "100")

	out := b.Entries()
	out[0].Sets[0].Weight = "tampered"
	out[0].Name = "tampered"

	e := b.Entries()[0]
	if e.Sets[0].Weight != "100" || e.Name != "" {
		t.Errorf("builder state leaked through Entries(): %+v", e)
	}
}

func TestBuilderValidate(t *testing.T) {
	cat := catalog.NewDefault()

	build := func(mutate func(b *Builder)) *Builder {
		b := NewBuilder()
		mutate(b)
		return b
	}

	t.Run("missing date", func(t *testing.T) {
		b := build(func(b *Builder) {})
		if _, err := b.validate(""); !errors.Is(err, ErrMissingDate) {
			t.Fatalf("err = %v, want ErrMissingDate", err)
		}
	})

	t.Run("empty draft", func(t *testing.T) {
		b := build(func(b *Builder) {})
		if _, err := b.validate("2026-08-01"); !errors.Is(err, ErrNoValidEntries) {
			t.Fatalf("err = %v, want ErrNoValidEntries", err)
		}
	})

	t.Run("entry without name dropped", func(t *testing.T) {
		b := build(func(b *Builder) {
			id := b.AddEntry()
			b.UpdateSetField(id, 0, "weight", "60")
			b.UpdateSetField(id, 0, "reps", "10")
		})
		if _, err := b.validate("2026-08-01"); !errors.Is(err, ErrNoValidEntries) {
			t.Fatalf("err = %v, want ErrNoValidEntries", err)
		}
	})

	t.Run("incomplete sets filtered", func(t *testing.T) {
		b := build(func(b *Builder) {
			id := b.AddEntry()
			b.SetEntryExercise(id, "ベンチプレス", cat)
			b.UpdateSetField(id, 0, "weight", "60")
			b.UpdateSetField(id, 0, "reps", "10")
			b.AddSet(id) // weight copied, reps left empty — must be dropped
		})
		entries, err := b.validate("2026-08-01")
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if len(entries) != 1 || len(entries[0].Sets) != 1 {
			t.Fatalf("entries = %+v, want one entry with one set", entries)
		}
		if got := entries[0].Volume(); got != 600 {
			t.Errorf("volume = %v, want 600", got)
		}
	})

	t.Run("draft preserved on failure", func(t *testing.T) {
		b := build(func(b *Builder) {
			b.AddEntry()
		})
		if _, err := b.validate("2026-08-01"); err == nil {
			t.Fatal("expected validation failure")
		}
		if len(b.Entries()) != 1 {
			t.Error("failed validate mutated the draft")
		}
	})
}
