package ocr

// Tier classifies a confidence score for visual severity.
type Tier string

const (
	TierGood     Tier = "good"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

// TierFor maps a 0-100 confidence score to its severity tier.
// Boundaries are inclusive at the top of each band: 90 is good, 70 is warning.
func TierFor(confidence float64) Tier {
	switch {
	case confidence >= 90:
		return TierGood
	case confidence >= 70:
		return TierWarning
	default:
		return TierCritical
	}
}
