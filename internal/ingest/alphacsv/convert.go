package alphacsv

import (
	"github.com/claude/trainlog/internal/catalog"
	"github.com/claude/trainlog/internal/models"
	"github.com/google/uuid"
)

// Result summarizes one CSV import.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SessionsImported int `json:"sessions_imported"`
}

// Convert maps parsed CSV sessions into committed domain sessions. Body
// parts are resolved through the catalog and left empty when the exercise is
// not cataloged (such entries count toward totals and time series but not
// the body-part breakdowns). Warmup and zero-rep sets are skipped; sessions
// with no surviving entries are dropped.
func Convert(parsed []Session, cat *catalog.Catalog) []models.Session {
	var out []models.Session
	for _, ps := range parsed {
		var entries []models.ExerciseEntry
		for _, ex := range ps.Exercises {
			var sets []models.Set
			for _, set := range ex.Sets {
				if set.IsWarmup || set.Reps <= 0 {
					continue
				}
				sets = append(sets, models.Set{
					Weight: set.WeightKg,
					Reps:   set.Reps,
				})
			}
			if len(sets) == 0 {
				continue
			}
			part, ok := cat.Lookup(ex.Name)
			if !ok {
				part = ""
			}
			entries = append(entries, models.ExerciseEntry{
				Name:     ex.Name,
				BodyPart: part,
				Sets:     sets,
			})
		}
		if len(entries) == 0 {
			continue
		}
		out = append(out, models.Session{
			ID:        uuid.NewString(),
			Date:      ps.Date.Format("2006-01-02"),
			Exercises: entries,
		})
	}
	return out
}
