package workout

import "testing"

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"60", 60, true},
		{"62.5", 62.5, true},
		{"0", 0, true},
		{" 80 ", 80, true},
		{"", 0, false},
		{"   ", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseWeight(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseWeight(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseReps(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"10", 10, true},
		{"0", 0, true},
		{" 12 ", 12, true},
		{"10.7", 10, true}, // truncates toward zero
		{"10.2", 10, true},
		{"", 0, false},
		{"-3", 0, false},
		{"-0.5", 0, false},
		{"xyz", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseReps(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseReps(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestParseSet verifies a set survives only when both weight and reps parse.
// The memo passes through untouched and never affects validity.
func TestParseSet(t *testing.T) {
	tests := []struct {
		name   string
		draft  SetDraft
		wantOK bool
	}{
		{"complete", SetDraft{Weight: "60", Reps: "10"}, true},
		{"zero weight ok", SetDraft{Weight: "0", Reps: "15", Memo: "bodyweight"}, true},
		{"missing reps", SetDraft{Weight: "60"}, false},
		{"missing weight", SetDraft{Reps: "10"}, false},
		{"both empty", SetDraft{Memo: "note only"}, false},
		{"negative weight", SetDraft{Weight: "-60", Reps: "10"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := parseSet(tt.draft)
			if ok != tt.wantOK {
				t.Fatalf("parseSet(%+v) ok = %v, want %v", tt.draft, ok, tt.wantOK)
			}
			if ok && set.Memo != tt.draft.Memo {
				t.Errorf("memo = %q, want %q", set.Memo, tt.draft.Memo)
			}
		})
	}
}
