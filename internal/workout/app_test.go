package workout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/claude/trainlog/internal/models"
)

// fakePersister is an in-memory Persister with injectable failures.
type fakePersister struct {
	slots    map[string]string
	failSlot string // SaveSlot to this slot fails when set
	saves    int
}

func newFakePersister() *fakePersister {
	return &fakePersister{slots: make(map[string]string)}
}

func (p *fakePersister) LoadSlot(ctx context.Context, slot string) (string, bool, error) {
	data, ok := p.slots[slot]
	return data, ok, nil
}

func (p *fakePersister) SaveSlot(ctx context.Context, slot, data string) error {
	if slot == p.failSlot {
		return errors.New("disk full")
	}
	p.slots[slot] = data
	p.saves++
	return nil
}

func testApp(p Persister) *App {
	return NewApp(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// TestLoadFirstRun verifies a fresh adapter yields the default catalog and an
// empty store.
func TestLoadFirstRun(t *testing.T) {
	app := testApp(newFakePersister())
	report, err := app.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if report.CatalogLoaded || report.SessionsLoaded != 0 {
		t.Errorf("report = %+v, want nothing loaded", report)
	}
	if _, ok := app.LookupExercise("ベンチプレス"); !ok {
		t.Error("default catalog missing after first-run load")
	}
	if len(app.Sessions()) != 0 {
		t.Error("store not empty on first run")
	}
}

// TestLoadCorruptSlots verifies corrupt blobs fall back to defaults and are
// reported rather than failing startup.
func TestLoadCorruptSlots(t *testing.T) {
	p := newFakePersister()
	p.slots[SlotCatalog] = "{not json"
	p.slots[SlotSessions] = "[broken"

	app := testApp(p)
	report, err := app.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !report.CatalogCorrupt || !report.SessionsCorrupt {
		t.Errorf("report = %+v, want both corrupt flags", report)
	}
	if _, ok := app.LookupExercise("スクワット"); !ok {
		t.Error("fallback catalog missing defaults")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	p := newFakePersister()
	app := testApp(p)
	ctx := context.Background()

	if err := app.AddExercise(ctx, "ブルガリアンスクワット", models.Legs); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	commitSession(t, app, "2026-08-01", "ベンチプレス", "60", "10")

	// A second App over the same adapter sees the identical state.
	app2 := testApp(p)
	report, err := app2.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !report.CatalogLoaded || report.SessionsLoaded != 1 {
		t.Errorf("report = %+v", report)
	}
	if _, ok := app2.LookupExercise("ブルガリアンスクワット"); !ok {
		t.Error("added exercise lost across reload")
	}
	if len(app2.Sessions()) != 1 {
		t.Errorf("sessions = %d, want 1", len(app2.Sessions()))
	}
}

// commitSession drives the draft builder through a complete single-set commit.
func commitSession(t *testing.T, app *App, date, exercise, weight, reps string) models.Session {
	t.Helper()
	id := app.AddDraftEntry()
	app.SetDraftExercise(id, exercise)
	app.UpdateDraftSetField(id, 0, "weight", weight)
	app.UpdateDraftSetField(id, 0, "reps", reps)
	sess, err := app.CommitDraft(context.Background(), date)
	if err != nil {
		t.Fatalf("CommitDraft: %v", err)
	}
	return sess
}

func TestCommitDraft(t *testing.T) {
	p := newFakePersister()
	app := testApp(p)

	sess := commitSession(t, app, "2026-08-15", "ベンチプレス", "60", "10")
	if sess.ID == "" || sess.Date != "2026-08-15" {
		t.Errorf("session = %+v", sess)
	}
	if len(sess.Exercises) != 1 || sess.Exercises[0].BodyPart != models.Chest {
		t.Errorf("exercises = %+v", sess.Exercises)
	}

	// Draft cleared, store and adapter updated.
	if len(app.DraftEntries()) != 0 {
		t.Error("draft not cleared after commit")
	}
	if len(app.Sessions()) != 1 {
		t.Error("session not in store")
	}
	var persisted []models.Session
	if err := json.Unmarshal([]byte(p.slots[SlotSessions]), &persisted); err != nil || len(persisted) != 1 {
		t.Errorf("persisted sessions = %q, err %v", p.slots[SlotSessions], err)
	}
}

// TestCommitDraftValidationFailure verifies a draft with no valid entries is
// rejected wholesale: nothing stored, nothing persisted, draft kept for
// correction.
func TestCommitDraftValidationFailure(t *testing.T) {
	p := newFakePersister()
	app := testApp(p)

	id := app.AddDraftEntry()
	app.SetDraftExercise(id, "ベンチプレス")
	app.UpdateDraftSetField(id, 0, "weight", "60") // reps missing

	_, err := app.CommitDraft(context.Background(), "2026-08-15")
	if !errors.Is(err, ErrNoValidEntries) {
		t.Fatalf("err = %v, want ErrNoValidEntries", err)
	}
	if len(app.Sessions()) != 0 {
		t.Error("failed commit left a session in the store")
	}
	if p.saves != 0 {
		t.Error("failed commit hit the persister")
	}
	if len(app.DraftEntries()) != 1 {
		t.Error("failed commit discarded the draft")
	}
}

// TestCommitDraftPersistFailure verifies the store rolls back when the
// adapter rejects the save, and the draft survives for retry.
func TestCommitDraftPersistFailure(t *testing.T) {
	p := newFakePersister()
	p.failSlot = SlotSessions
	app := testApp(p)

	id := app.AddDraftEntry()
	app.SetDraftExercise(id, "スクワット")
	app.UpdateDraftSetField(id, 0, "weight", "100")
	app.UpdateDraftSetField(id, 0, "reps", "5")

	_, err := app.CommitDraft(context.Background(), "2026-08-15")
	if err == nil {
		t.Fatal("expected persist failure")
	}
	if len(app.Sessions()) != 0 {
		t.Error("store not rolled back after persist failure")
	}
	if len(app.DraftEntries()) != 1 {
		t.Error("draft discarded despite failed commit")
	}
}

func TestAddExerciseRollback(t *testing.T) {
	p := newFakePersister()
	p.failSlot = SlotCatalog
	app := testApp(p)

	err := app.AddExercise(context.Background(), "新種目", models.Arms)
	if err == nil {
		t.Fatal("expected persist failure")
	}
	if _, ok := app.LookupExercise("新種目"); ok {
		t.Error("catalog kept the exercise after persist failure")
	}
}

func TestDeleteSession(t *testing.T) {
	app := testApp(newFakePersister())
	sess := commitSession(t, app, "2026-08-01", "デッドリフト", "120", "5")

	if err := app.DeleteSession(context.Background(), "no-such-id"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if err := app.DeleteSession(context.Background(), sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if len(app.Sessions()) != 0 {
		t.Error("session still present after delete")
	}
}

func TestExportImportSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	app := testApp(newFakePersister())
	commitSession(t, app, "2026-08-01", "ベンチプレス", "60", "10")
	commitSession(t, app, "2026-08-03", "スクワット", "100", "5")

	snap := app.ExportSnapshot()
	if snap.Version != models.SnapshotVersion {
		t.Errorf("version = %d, want %d", snap.Version, models.SnapshotVersion)
	}
	if snap.ExportedAt == "" {
		t.Error("exportedAt empty")
	}
	blob, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Import into a different app with unrelated state.
	app2 := testApp(newFakePersister())
	commitSession(t, app2, "2026-01-01", "カーフレイズ", "40", "20")

	n, err := app2.ImportSnapshot(ctx, blob)
	if err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}
	sessions := app2.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2 (old state must be replaced)", len(sessions))
	}
	if sessions[0].Date != "2026-08-01" || sessions[1].Date != "2026-08-03" {
		t.Errorf("dates = %q, %q", sessions[0].Date, sessions[1].Date)
	}
}

func TestImportSnapshotInvalid(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{broken"},
		{"missing exercises", `{"version":1,"sessions":[]}`},
		{"missing sessions", `{"version":1,"exercises":{}}`},
		{"null fields", `{"version":1,"exercises":null,"sessions":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(newFakePersister())
			commitSession(t, app, "2026-08-01", "ベンチプレス", "60", "10")

			_, err := app.ImportSnapshot(context.Background(), []byte(tt.blob))
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("err = %v, want ErrInvalidFormat", err)
			}
			if len(app.Sessions()) != 1 {
				t.Error("rejected import changed the store")
			}
		})
	}
}

// TestImportSnapshotPersistFailure verifies in-memory state rolls back when
// the adapter rejects the sessions save partway through.
func TestImportSnapshotPersistFailure(t *testing.T) {
	p := newFakePersister()
	app := testApp(p)
	commitSession(t, app, "2026-08-01", "ベンチプレス", "60", "10")

	p.failSlot = SlotSessions
	blob := `{"version":1,"exercises":{"x":"chest"},"sessions":[]}`
	if _, err := app.ImportSnapshot(context.Background(), []byte(blob)); err == nil {
		t.Fatal("expected persist failure")
	}
	if len(app.Sessions()) != 1 {
		t.Error("store not rolled back")
	}
	if _, ok := app.LookupExercise("ベンチプレス"); !ok {
		t.Error("catalog not rolled back")
	}
}

func TestAppendSessions(t *testing.T) {
	app := testApp(newFakePersister())

	n, err := app.AppendSessions(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("empty append = %d, %v", n, err)
	}

	batch := []models.Session{
		{ID: "a", Date: "2026-07-01"},
		{ID: "b", Date: "2026-07-02"},
	}
	n, err = app.AppendSessions(context.Background(), batch)
	if err != nil {
		t.Fatalf("AppendSessions: %v", err)
	}
	if n != 2 || len(app.Sessions()) != 2 {
		t.Errorf("appended = %d, store = %d", n, len(app.Sessions()))
	}
}
