package workout

import (
	"math"
	"strconv"
	"strings"

	"github.com/claude/trainlog/internal/models"
)

// parseSet converts a raw set draft into a validated set. It reports false
// when the draft is incomplete: weight or reps empty, unparsable, or
// negative. Such sets are filtered out at commit time rather than treated as
// errors.
func parseSet(d SetDraft) (models.Set, bool) {
	weight, ok := parseWeight(d.Weight)
	if !ok {
		return models.Set{}, false
	}
	reps, ok := parseReps(d.Reps)
	if !ok {
		return models.Set{}, false
	}
	return models.Set{Weight: weight, Reps: reps, Memo: d.Memo}, true
}

func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w < 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		return 0, false
	}
	return w, true
}

// parseReps parses a rep count. Non-integer numeric strings truncate toward
// zero ("10.7" → 10).
func parseReps(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
