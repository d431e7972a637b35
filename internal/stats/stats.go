// Package stats computes derived metrics over the session store: dashboard
// totals, body-part volume breakdowns and per-exercise time series. All
// functions are pure; the rendering layer re-invokes them after mutations.
package stats

import (
	"sort"
	"time"

	"github.com/claude/trainlog/internal/models"
)

const dateLayout = "2006-01-02"

// TotalSessions returns the number of sessions.
func TotalSessions(sessions []models.Session) int {
	return len(sessions)
}

// TotalSets returns the count of sets across all sessions.
func TotalSets(sessions []models.Session) int {
	var total int
	for _, s := range sessions {
		for _, e := range s.Exercises {
			total += len(e.Sets)
		}
	}
	return total
}

// TotalVolume returns the sum of weight × reps over every set.
func TotalVolume(sessions []models.Session) float64 {
	var total float64
	for _, s := range sessions {
		for _, e := range s.Exercises {
			total += e.Volume()
		}
	}
	return total
}

// SessionsInMonth counts sessions in the same calendar month and year as
// ref. Sessions with unparsable dates are not counted.
func SessionsInMonth(sessions []models.Session, ref time.Time) int {
	var count int
	for _, s := range sessions {
		d, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			continue
		}
		if d.Year() == ref.Year() && d.Month() == ref.Month() {
			count++
		}
	}
	return count
}

// BodyPartVolume sums weight × reps per body part over sessions dated within
// the trailing window [ref - windowDays, ref]. The lower bound is inclusive:
// a session exactly windowDays old is counted. All six parts are always
// present in the result, zero when no data. Entries whose body part is not
// one of the fixed six (e.g. recorded before the exercise was cataloged) are
// skipped.
func BodyPartVolume(sessions []models.Session, windowDays int, ref time.Time) map[models.BodyPart]float64 {
	// Session dates parse to midnight, so the reference must be truncated to
	// day granularity or a boundary session loses to ref's time-of-day.
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := day.AddDate(0, 0, -windowDays)

	volumes := make(map[models.BodyPart]float64, len(models.AllBodyParts))
	for _, part := range models.AllBodyParts {
		volumes[part] = 0
	}

	for _, s := range sessions {
		d, err := time.Parse(dateLayout, s.Date)
		if err != nil || d.Before(cutoff) {
			continue
		}
		for _, e := range s.Exercises {
			if _, ok := volumes[e.BodyPart]; !ok {
				continue
			}
			volumes[e.BodyPart] += e.Volume()
		}
	}
	return volumes
}

// AllTimeBodyPartVolume is BodyPartVolume without a date window, for the
// distribution chart. HasData reports whether any part is non-zero so
// callers can suppress rendering an all-zero chart.
func AllTimeBodyPartVolume(sessions []models.Session) (volumes map[models.BodyPart]float64, hasData bool) {
	volumes = make(map[models.BodyPart]float64, len(models.AllBodyParts))
	for _, part := range models.AllBodyParts {
		volumes[part] = 0
	}
	for _, s := range sessions {
		for _, e := range s.Exercises {
			if _, ok := volumes[e.BodyPart]; !ok {
				continue
			}
			volumes[e.BodyPart] += e.Volume()
		}
	}
	for _, v := range volumes {
		if v > 0 {
			hasData = true
			break
		}
	}
	return volumes, hasData
}

// BarHeights converts per-part volumes into percentages of the maximum, for
// relative bar rendering. A zero maximum is substituted with 1 so an empty
// window yields all-zero heights instead of dividing by zero. Any visual
// floor for zero bars is a presentation concern.
func BarHeights(volumes map[models.BodyPart]float64) map[models.BodyPart]float64 {
	max := 0.0
	for _, v := range volumes {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	heights := make(map[models.BodyPart]float64, len(volumes))
	for part, v := range volumes {
		heights[part] = v / max * 100
	}
	return heights
}

// Metric selects the per-session value computed by ExerciseTimeSeries.
type Metric string

const (
	MetricMaxWeight   Metric = "max-weight"
	MetricTotalVolume Metric = "total-volume"
	MetricMaxReps     Metric = "max-reps"
)

// ValidMetric reports whether m is a known time-series metric.
func ValidMetric(m Metric) bool {
	switch m {
	case MetricMaxWeight, MetricTotalVolume, MetricMaxReps:
		return true
	}
	return false
}

// Point is one (date, value) pair in a time series.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ExerciseTimeSeries produces one point per session containing the named
// exercise, sorted by date ascending with same-date ties kept in insertion
// order. When the exercise appears in several entries of one session the
// value is merged: max across entries for max-weight and max-reps, sum for
// total-volume. Returns an empty slice if the exercise was never performed.
func ExerciseTimeSeries(sessions []models.Session, exerciseName string, metric Metric) []Point {
	ordered := sortedByDate(sessions, true)

	points := []Point{}
	for _, s := range ordered {
		var value float64
		found := false
		for _, e := range s.Exercises {
			if e.Name != exerciseName {
				continue
			}
			v := entryMetric(e, metric)
			if !found {
				value = v
			} else if metric == MetricTotalVolume {
				value += v
			} else if v > value {
				value = v
			}
			found = true
		}
		if found {
			points = append(points, Point{Date: s.Date, Value: value})
		}
	}
	return points
}

func entryMetric(e models.ExerciseEntry, metric Metric) float64 {
	switch metric {
	case MetricTotalVolume:
		return e.Volume()
	case MetricMaxReps:
		var max int
		for _, s := range e.Sets {
			if s.Reps > max {
				max = s.Reps
			}
		}
		return float64(max)
	default: // max-weight
		var max float64
		for _, s := range e.Sets {
			if s.Weight > max {
				max = s.Weight
			}
		}
		return max
	}
}

// RecentSessions returns sessions sorted by date descending, truncated to
// limit. Same-date ties put the most recently appended session first.
func RecentSessions(sessions []models.Session, limit int) []models.Session {
	ordered := sortedByDate(sessions, false)
	if limit >= 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// UsedExerciseNames returns every distinct exercise name ever recorded,
// sorted alphabetically. Names no longer in the catalog still appear; the
// history is the source of truth for chart selection.
func UsedExerciseNames(sessions []models.Session) []string {
	seen := make(map[string]struct{})
	for _, s := range sessions {
		for _, e := range s.Exercises {
			seen[e.Name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortedByDate returns a copy of sessions ordered by the date string.
// Ascending order keeps insertion order for equal dates; descending order
// reverses it, so the most recently appended same-date session sorts first.
func sortedByDate(sessions []models.Session, ascending bool) []models.Session {
	indexed := make([]int, len(sessions))
	for i := range indexed {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		da, db := sessions[indexed[a]].Date, sessions[indexed[b]].Date
		if ascending {
			if da != db {
				return da < db
			}
			return indexed[a] < indexed[b]
		}
		if da != db {
			return da > db
		}
		return indexed[a] > indexed[b]
	})

	out := make([]models.Session, len(sessions))
	for i, idx := range indexed {
		out[i] = sessions[idx]
	}
	return out
}
