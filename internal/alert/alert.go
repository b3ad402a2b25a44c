package alert

import "time"

// Level is the alert severity.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelCritical
)

// String returns the console name of the level.
func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "CRITICAL"
	case LevelWarning:
		return "WARNING"
	default:
		return "INFO"
	}
}

// Kind identifies the rule that produced an alert. Used by the per-kind
// cooldown variant.
type Kind int

const (
	KindHeartRate Kind = iota
	KindSpO2
	KindBattery
	kindCount
)

// Alert is one raised alarm. Only the Acknowledged flag is ever mutated
// after creation.
type Alert struct {
	Level        Level
	Message      string
	Timestamp    time.Time
	Acknowledged bool
}
