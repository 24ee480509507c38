package matching

import "fmt"

// Tier is the display band of a score.
type Tier int

const (
	TierPoor Tier = iota
	TierLow
	TierMid
	TierHigh
)

// Lower bounds of the bands, inclusive.
const (
	highThreshold = 80
	midThreshold  = 60
	lowThreshold  = 40
)

var tierLabels = map[Tier]string{
	TierPoor: "poor",
	TierLow:  "low",
	TierMid:  "mid",
	TierHigh: "high",
}

// ScoreTier classifies a score. The first matching band wins.
func ScoreTier(score int) Tier {
	switch {
	case score >= highThreshold:
		return TierHigh
	case score >= midThreshold:
		return TierMid
	case score >= lowThreshold:
		return TierLow
	default:
		return TierPoor
	}
}

func (t Tier) String() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// MarshalText writes the tier as its text label.
func (t Tier) MarshalText() ([]byte, error) {
	if _, ok := tierLabels[t]; !ok {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses one of the tier labels.
func (t *Tier) UnmarshalText(text []byte) error {
	tier, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseTier returns the tier with the given label.
func ParseTier(label string) (Tier, error) {
	for tier, l := range tierLabels {
		if l == label {
			return tier, nil
		}
	}
	return TierPoor, fmt.Errorf("unknown tier %q", label)
}
