package ga

import (
	"fmt"
	"math"
	"strings"
)

// Comparison selects how the best record ranks fitness values.
// Selection always uses raw scores; only best tracking is affected.
type Comparison int

const (
	// CompareRaw prefers the smaller signed fitness
	CompareRaw Comparison = iota
	// CompareAbsolute prefers the fitness closest to zero
	CompareAbsolute
)

func (c Comparison) String() string {
	switch c {
	case CompareRaw:
		return "raw"
	case CompareAbsolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// ParseComparison accepts "raw" or "absolute" (empty means raw)
func ParseComparison(s string) (Comparison, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return CompareRaw, nil
	case "absolute", "abs":
		return CompareAbsolute, nil
	default:
		return CompareRaw, fmt.Errorf("unknown comparison mode %q", s)
	}
}

// Better reports whether candidate strictly improves on current
func (c Comparison) Better(candidate, current float64) bool {
	if c == CompareAbsolute {
		return math.Abs(candidate) < math.Abs(current)
	}
	return candidate < current
}
