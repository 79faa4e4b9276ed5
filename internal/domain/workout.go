package domain

import "fmt"

// WorkoutOption is one concrete workout the user can pick from the chooser.
type WorkoutOption struct {
	ID        string
	Name      string
	Duration  string
	Intensity string
}

// WorkoutCategory groups workout options under a display heading.
type WorkoutCategory struct {
	ID      string
	Name    string
	Options []WorkoutOption
}

// WorkoutCatalog returns the categories offered by the workout chooser. The
// catalog is static; the orchestrator decides when to show it.
func WorkoutCatalog() []WorkoutCategory {
	return []WorkoutCategory{
		{
			ID:   "cardio",
			Name: "Cardio Training",
			Options: []WorkoutOption{
				{ID: "running", Name: "Running", Duration: "30 min", Intensity: "Medium"},
				{ID: "cycling", Name: "Cycling", Duration: "45 min", Intensity: "Medium"},
				{ID: "swimming", Name: "Swimming", Duration: "30 min", Intensity: "Low"},
				{ID: "hiit", Name: "HIIT", Duration: "20 min", Intensity: "High"},
			},
		},
		{
			ID:   "strength",
			Name: "Strength Training",
			Options: []WorkoutOption{
				{ID: "upper_body", Name: "Upper Body", Duration: "45 min", Intensity: "Medium"},
				{ID: "lower_body", Name: "Lower Body", Duration: "45 min", Intensity: "Medium"},
				{ID: "full_body", Name: "Full Body", Duration: "60 min", Intensity: "High"},
				{ID: "core", Name: "Core Focus", Duration: "30 min", Intensity: "Medium"},
			},
		},
		{
			ID:   "flexibility",
			Name: "Flexibility & Recovery",
			Options: []WorkoutOption{
				{ID: "yoga", Name: "Yoga", Duration: "45 min", Intensity: "Low"},
				{ID: "stretching", Name: "Stretching", Duration: "20 min", Intensity: "Low"},
				{ID: "pilates", Name: "Pilates", Duration: "45 min", Intensity: "Medium"},
				{ID: "mobility", Name: "Mobility", Duration: "30 min", Intensity: "Low"},
			},
		},
	}
}

// WorkoutSelectionMessage is the canonical user turn sent when a workout is
// chosen from the chooser.
func WorkoutSelectionMessage(w WorkoutOption) string {
	return fmt.Sprintf("I would like to do %s workout", w.Name)
}
