package entity

type EventLocation struct {
	Base

	EventID string
	Event   Event `gorm:"foreignKey:EventID"`

	Name string
	Code string `gorm:"unique"`

	// Zero means inherit the event value.
	DailySpinLimit        int
	DefaultWinProbability float64

	// InitialSpins is the entitlement granted when a participant first spins
	// at this location. Zero means the configured process-wide default.
	InitialSpins int

	Status Status
}

// EffectiveDailySpinLimit resolves the location override against the owning
// event.
func (l *EventLocation) EffectiveDailySpinLimit(event *Event) int {
	if l.DailySpinLimit > 0 {
		return l.DailySpinLimit
	}

	return event.DailySpinLimit
}

// EffectiveWinProbability resolves the fallback win probability used when a
// reward does not define its own.
func (l *EventLocation) EffectiveWinProbability(event *Event) float64 {
	if l.DefaultWinProbability > 0 {
		return l.DefaultWinProbability
	}

	return event.DefaultWinProbability
}
