package calendar

// Level is the expected crowd density at the holy sites for a day
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Label returns the French legend shown under the grid
func (l Level) Label() string {
	switch l {
	case LevelHigh:
		return "Forte affluence"
	case LevelModerate:
		return "Affluence modérée"
	case LevelLow:
		return "Calme"
	}
	return ""
}

// CrowdLevel is a placeholder heuristic until real attendance data is wired in
func CrowdLevel(day int) Level {
	switch {
	case day%7 == 2 || day%7 == 3:
		return LevelHigh
	case day%5 == 0:
		return LevelModerate
	default:
		return LevelLow
	}
}
