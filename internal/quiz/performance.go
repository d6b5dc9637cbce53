package quiz

// Tier classifies a quiz result into one of three performance levels.
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierNeedsImprovement Tier = "needs_improvement"
)

// Config holds the tunables of a quiz run. Immutable once constructed; a
// copy is handed to each session instead of living in package globals.
type Config struct {
	SpecificRatio      float64 // share of questions drawn from the specific pool
	ExcellentThreshold float64 // percentage at or above which the tier is excellent
	GoodThreshold      float64 // percentage at or above which the tier is good
}

// DefaultConfig returns the standard 60/40 split with 70/50 thresholds.
func DefaultConfig() Config {
	return Config{
		SpecificRatio:      0.6,
		ExcellentThreshold: 70,
		GoodThreshold:      50,
	}
}

var tierMessages = map[Tier]string{
	TierExcellent:        "Congratulations! Excellent performance!",
	TierGood:             "Good job! Keep studying!",
	TierNeedsImprovement: "Keep studying to improve!",
}

// Performance is the derived result of a finished quiz run.
type Performance struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Tier       Tier    `json:"tier"`
	Message    string  `json:"message"`
}

// Evaluate computes the percentage and tier for a finished run. A run with
// no questions yields 0% and the lowest tier rather than dividing by zero.
func Evaluate(correct, total int, cfg Config) Performance {
	p := Performance{Correct: correct, Total: total}
	if total > 0 {
		p.Percentage = float64(correct) / float64(total) * 100
	}
	switch {
	case total > 0 && p.Percentage >= cfg.ExcellentThreshold:
		p.Tier = TierExcellent
	case total > 0 && p.Percentage >= cfg.GoodThreshold:
		p.Tier = TierGood
	default:
		p.Tier = TierNeedsImprovement
	}
	p.Message = tierMessages[p.Tier]
	return p
}
