package score

// Tier is the severity classification of a score or a raw metric value.
type Tier int

const (
	Good Tier = iota
	Warning
	Critical
)

// Display colors per tier.
const (
	ColorGood     = "#10B981"
	ColorWarning  = "#F59E0B"
	ColorCritical = "#EF4444"
)

func (t Tier) String() string {
	switch t {
	case Good:
		return "good"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Color returns the hex display color bound to the tier.
func (t Tier) Color() string {
	switch t {
	case Good:
		return ColorGood
	case Warning:
		return ColorWarning
	default:
		return ColorCritical
	}
}
