package models

// BodyPart is one of the six fixed training categories.
type BodyPart string

const (
	Chest     BodyPart = "chest"
	Back      BodyPart = "back"
	Shoulders BodyPart = "shoulders"
	Arms      BodyPart = "arms"
	Legs      BodyPart = "legs"
	Core      BodyPart = "core"
)

// AllBodyParts lists every body part in display order.
var AllBodyParts = []BodyPart{Chest, Back, Shoulders, Arms, Legs, Core}

// Valid reports whether p is one of the six fixed body parts.
func (p BodyPart) Valid() bool {
	switch p {
	case Chest, Back, Shoulders, Arms, Legs, Core:
		return true
	}
	return false
}

// Set is one performed set of an exercise.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Memo   string  `json:"memo"`
}

// Volume returns weight × reps, the training load proxy for one set.
func (s Set) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// ExerciseEntry is one exercise performed within a session. BodyPart is a
// snapshot of the catalog value at commit time; catalog edits after the
// session is recorded never change it.
type ExerciseEntry struct {
	Name     string   `json:"name"`
	BodyPart BodyPart `json:"bodyPart"`
	Sets     []Set    `json:"sets"`
}

// Volume returns the summed volume of all sets in the entry.
func (e ExerciseEntry) Volume() float64 {
	var total float64
	for _, s := range e.Sets {
		total += s.Volume()
	}
	return total
}

// Session is one dated workout. Date is a calendar date string (YYYY-MM-DD,
// no time component). Sessions are immutable once committed; the only
// mutation is whole-session deletion.
type Session struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Exercises []ExerciseEntry `json:"exercises"`
}
