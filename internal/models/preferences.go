package models

// Preferences holds the user's scheduling configuration. All fields are
// read-only inputs to a scheduling run.
type Preferences struct {
	WorkDayStart  string `json:"workDayStart"` // HH:MM
	WorkDayEnd    string `json:"workDayEnd"`   // HH:MM
	BreakDuration int    `json:"breakDuration"` // minutes
	MinWorkBlock  int    `json:"minWorkBlock"`  // minutes
	// PreferredTimes maps a task category to the HH:MM hour the user
	// prefers to work on it (the upstream preferred_<category>_time keys).
	PreferredTimes map[string]string `json:"preferredTimes,omitempty"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		WorkDayStart:  "09:00",
		WorkDayEnd:    "17:00",
		BreakDuration: 15,
		MinWorkBlock:  45,
	}
}

// BreakMinutes returns the configured break duration, falling back to
// the default when unset.
func (p Preferences) BreakMinutes() int {
	if p.BreakDuration <= 0 {
		return 15
	}
	return p.BreakDuration
}

// MinBlockMinutes returns the minimum work block length before a break
// is warranted, falling back to the default when unset.
func (p Preferences) MinBlockMinutes() int {
	if p.MinWorkBlock <= 0 {
		return 45
	}
	return p.MinWorkBlock
}

// PreferredTime returns the preferred HH:MM time for a category, if set.
func (p Preferences) PreferredTime(category string) (string, bool) {
	if p.PreferredTimes == nil || category == "" {
		return "", false
	}
	t, ok := p.PreferredTimes[category]
	return t, ok && t != ""
}
