// Package workout owns the application state: the exercise catalog, the
// session store and the in-progress draft builder. Every mutation is
// all-or-nothing and persists synchronously through the Persister before it
// is considered committed.
package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/trainlog/internal/catalog"
	"github.com/claude/trainlog/internal/models"
	"github.com/google/uuid"
)

// Slot names in the persistence adapter. The catalog and the session store
// are independently addressable opaque blobs.
const (
	SlotCatalog  = "exercises"
	SlotSessions = "sessions"
)

// Persister stores and retrieves the two serialized state blobs. Absence of
// a slot (first run) is reported via ok=false, not an error.
type Persister interface {
	LoadSlot(ctx context.Context, slot string) (data string, ok bool, err error)
	SaveSlot(ctx context.Context, slot, data string) error
}

// App is the single in-process owner of all workout state. Handlers run
// concurrently, so every operation takes the mutex; the adapter only ever
// sees serialized snapshots, never a live reference.
type App struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	store   *Store
	builder *Builder
	persist Persister
	log     *slog.Logger
	now     func() time.Time
}

// NewApp creates an App with a default catalog and empty store. Call Load to
// replace them with persisted state.
func NewApp(p Persister, log *slog.Logger) *App {
	return &App{
		catalog: catalog.NewDefault(),
		store:   NewStore(),
		builder: NewBuilder(),
		persist: p,
		log:     log,
		now:     time.Now,
	}
}

// LoadReport describes what Load found in the persistence adapter. A corrupt
// blob falls back to defaults/empty state; the flags let the caller record
// that data was dropped instead of losing it silently.
type LoadReport struct {
	CatalogLoaded   bool
	SessionsLoaded  int
	CatalogCorrupt  bool
	SessionsCorrupt bool
}

// Load reads both slots from the adapter. A missing catalog slot keeps the
// built-in defaults; a missing sessions slot keeps the empty store. Read
// errors from the adapter itself are returned.
func (a *App) Load(ctx context.Context) (LoadReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var report LoadReport

	if data, ok, err := a.persist.LoadSlot(ctx, SlotCatalog); err != nil {
		return report, fmt.Errorf("loading catalog slot: %w", err)
	} else if ok {
		var m map[string]models.BodyPart
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			a.log.Warn("persisted catalog is corrupt, falling back to defaults", "error", err)
			report.CatalogCorrupt = true
		} else {
			a.catalog = catalog.FromMap(m)
			report.CatalogLoaded = true
		}
	}

	if data, ok, err := a.persist.LoadSlot(ctx, SlotSessions); err != nil {
		return report, fmt.Errorf("loading sessions slot: %w", err)
	} else if ok {
		var sessions []models.Session
		if err := json.Unmarshal([]byte(data), &sessions); err != nil {
			a.log.Warn("persisted sessions are corrupt, starting empty", "error", err)
			report.SessionsCorrupt = true
		} else {
			a.store.Replace(sessions)
			report.SessionsLoaded = len(sessions)
		}
	}

	return report, nil
}

// --- Catalog operations ---

// AddExercise catalogs a new exercise and persists the catalog. Validation
// failure or a persistence error leaves the catalog unchanged.
func (a *App) AddExercise(ctx context.Context, name string, part models.BodyPart) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.catalog.Map()
	if err := a.catalog.Add(name, part); err != nil {
		return err
	}
	if err := a.saveCatalog(ctx); err != nil {
		a.catalog = catalog.FromMap(before)
		return err
	}
	return nil
}

// LookupExercise resolves an exercise name to its body part.
func (a *App) LookupExercise(name string) (models.BodyPart, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Lookup(name)
}

// CatalogMap returns a copy of the full name → body part mapping.
func (a *App) CatalogMap() map[string]models.BodyPart {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Map()
}

// CatalogGroups returns the catalog grouped by body part in display order.
func (a *App) CatalogGroups() []catalog.Group {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.ListByPart()
}

// --- Draft operations ---

// AddDraftEntry appends an empty entry draft and returns its ID.
func (a *App) AddDraftEntry() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.builder.AddEntry()
}

// RemoveDraftEntry removes a draft entry; unknown IDs are a no-op.
func (a *App) RemoveDraftEntry(entryID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.builder.RemoveEntry(entryID)
}

// SetDraftExercise sets a draft entry's exercise and resolved body part.
func (a *App) SetDraftExercise(entryID, name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.builder.SetEntryExercise(entryID, name, a.catalog)
}

// AddDraftSet appends a set draft to an entry.
func (a *App) AddDraftSet(entryID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.builder.AddSet(entryID)
}

// RemoveDraftSet removes a set draft by index, keeping at least one slot.
func (a *App) RemoveDraftSet(entryID string, index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.builder.RemoveSet(entryID, index)
}

// UpdateDraftSetField updates one raw field of a set draft.
func (a *App) UpdateDraftSetField(entryID string, index int, field, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.builder.UpdateSetField(entryID, index, field, value)
}

// DraftEntries returns a copy of the current draft state.
func (a *App) DraftEntries() []EntryDraft {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.builder.Entries()
}

// ResetDraft discards the draft state without committing.
func (a *App) ResetDraft() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.builder.Reset()
}

// CommitDraft validates the draft, appends the resulting session to the
// store, persists and clears the draft. On any failure the store and the
// draft are both left exactly as they were.
func (a *App) CommitDraft(ctx context.Context, date string) (models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries, err := a.builder.validate(date)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{
		ID:        uuid.NewString(),
		Date:      date,
		Exercises: entries,
	}
	a.store.Append(sess)
	if err := a.saveSessions(ctx); err != nil {
		a.store.Delete(sess.ID)
		return models.Session{}, err
	}
	a.builder.Reset()
	return sess, nil
}

// --- Session store operations ---

// Sessions returns a copy of all committed sessions in insertion order.
func (a *App) Sessions() []models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Sessions()
}

// DeleteSession removes one session wholesale and persists.
func (a *App) DeleteSession(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.store.Sessions()
	if !a.store.Delete(id) {
		return ErrSessionNotFound
	}
	if err := a.saveSessions(ctx); err != nil {
		a.store.Replace(before)
		return err
	}
	return nil
}

// AppendSessions adds already-validated sessions (e.g. from a CSV import) to
// the store and persists. Returns the number appended.
func (a *App) AppendSessions(ctx context.Context, sessions []models.Session) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(sessions) == 0 {
		return 0, nil
	}
	before := a.store.Sessions()
	for _, s := range sessions {
		a.store.Append(s)
	}
	if err := a.saveSessions(ctx); err != nil {
		a.store.Replace(before)
		return 0, err
	}
	return len(sessions), nil
}

// --- Snapshot export / import ---

// ExportSnapshot produces the versioned backup structure with the full
// catalog and session store.
func (a *App) ExportSnapshot() models.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.Snapshot{
		Version:    models.SnapshotVersion,
		ExportedAt: a.now().UTC().Format(time.RFC3339),
		Exercises:  a.catalog.Map(),
		Sessions:   a.store.Sessions(),
	}
}

// ImportSnapshot parses a backup blob and wholesale-replaces the catalog and
// session store. The check is shallow: both the exercises and sessions
// fields must be present and non-null; no version compatibility check is
// performed. The operation is destructive and the caller is responsible for
// prior user confirmation. Returns the number of imported sessions.
func (a *App) ImportSnapshot(ctx context.Context, blob []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var snap models.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if snap.Exercises == nil || snap.Sessions == nil {
		return 0, ErrInvalidFormat
	}

	prevCatalog := a.catalog
	prevSessions := a.store.Sessions()

	a.catalog = catalog.FromMap(snap.Exercises)
	a.store.Replace(snap.Sessions)

	if err := a.saveCatalog(ctx); err != nil {
		a.catalog = prevCatalog
		a.store.Replace(prevSessions)
		return 0, err
	}
	if err := a.saveSessions(ctx); err != nil {
		a.catalog = prevCatalog
		a.store.Replace(prevSessions)
		if rerr := a.saveCatalog(ctx); rerr != nil {
			a.log.Warn("failed to restore catalog slot after import failure", "error", rerr)
		}
		return 0, err
	}
	return len(snap.Sessions), nil
}

// --- Persistence helpers ---

func (a *App) saveCatalog(ctx context.Context) error {
	data, err := json.Marshal(a.catalog.Map())
	if err != nil {
		return fmt.Errorf("serializing catalog: %w", err)
	}
	if err := a.persist.SaveSlot(ctx, SlotCatalog, string(data)); err != nil {
		return fmt.Errorf("persisting catalog: %w", err)
	}
	return nil
}

func (a *App) saveSessions(ctx context.Context) error {
	sessions := a.store.Sessions()
	if sessions == nil {
		sessions = []models.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("serializing sessions: %w", err)
	}
	if err := a.persist.SaveSlot(ctx, SlotSessions, string(data)); err != nil {
		return fmt.Errorf("persisting sessions: %w", err)
	}
	return nil
}
