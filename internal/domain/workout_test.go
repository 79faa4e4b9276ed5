package domain

import "testing"

func TestWorkoutCatalogShape(t *testing.T) {
	cats := WorkoutCatalog()
	if len(cats) != 3 {
		t.Fatalf("got %d categories, want 3", len(cats))
	}
	for _, c := range cats {
		if len(c.Options) != 4 {
			t.Errorf("category %s has %d options, want 4", c.ID, len(c.Options))
		}
		for _, o := range c.Options {
			if o.ID == "" || o.Name == "" || o.Duration == "" || o.Intensity == "" {
				t.Errorf("incomplete option in %s: %+v", c.ID, o)
			}
		}
	}
}

func TestWorkoutCatalogContents(t *testing.T) {
	want := map[string]WorkoutOption{
		"running":    {ID: "running", Name: "Running", Duration: "30 min", Intensity: "Medium"},
		"cycling":    {ID: "cycling", Name: "Cycling", Duration: "45 min", Intensity: "Medium"},
		"swimming":   {ID: "swimming", Name: "Swimming", Duration: "30 min", Intensity: "Low"},
		"hiit":       {ID: "hiit", Name: "HIIT", Duration: "20 min", Intensity: "High"},
		"upper_body": {ID: "upper_body", Name: "Upper Body", Duration: "45 min", Intensity: "Medium"},
		"lower_body": {ID: "lower_body", Name: "Lower Body", Duration: "45 min", Intensity: "Medium"},
		"full_body":  {ID: "full_body", Name: "Full Body", Duration: "60 min", Intensity: "High"},
		"core":       {ID: "core", Name: "Core Focus", Duration: "30 min", Intensity: "Medium"},
		"yoga":       {ID: "yoga", Name: "Yoga", Duration: "45 min", Intensity: "Low"},
		"stretching": {ID: "stretching", Name: "Stretching", Duration: "20 min", Intensity: "Low"},
		"pilates":    {ID: "pilates", Name: "Pilates", Duration: "45 min", Intensity: "Medium"},
		"mobility":   {ID: "mobility", Name: "Mobility", Duration: "30 min", Intensity: "Low"},
	}
	for _, c := range WorkoutCatalog() {
		for _, o := range c.Options {
			if o != want[o.ID] {
				t.Errorf("option %s = %+v, want %+v", o.ID, o, want[o.ID])
			}
			delete(want, o.ID)
		}
	}
	for id := range want {
		t.Errorf("option %s missing from catalog", id)
	}
}

func TestWorkoutSelectionMessage(t *testing.T) {
	w := WorkoutOption{ID: "hiit", Name: "HIIT"}
	got := WorkoutSelectionMessage(w)
	want := "I would like to do HIIT workout"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanHandoffTo(t *testing.T) {
	a := AgentDescriptor{Name: "Triage Agent", Handoffs: []string{"Workout Agent", "Nutrition Agent"}}
	if !a.CanHandoffTo("Workout Agent") {
		t.Error("expected handoff to be allowed")
	}
	if a.CanHandoffTo("Billing Agent") {
		t.Error("unexpected handoff allowed")
	}
}
