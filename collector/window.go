package collector

// TimeWindow is one tier of the degrading history request range, e.g. "5y".
// Tiers are ordered from the widest window to the narrowest; every pass of the
// collection engine runs at exactly one tier and retries move strictly toward
// narrower tiers.
type TimeWindow string

func Windows(tiers []string) []TimeWindow {
	out := make([]TimeWindow, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, TimeWindow(t))
	}
	return out
}

// WindowIndex returns the position of w within tiers, or -1 when w is not a
// supported tier.
func WindowIndex(tiers []TimeWindow, w TimeWindow) int {
	for idx, tier := range tiers {
		if tier == w {
			return idx
		}
	}
	return -1
}

// NextNarrower returns the tier immediately after w. The second return value
// is false when w is already the narrowest tier or is unknown.
func NextNarrower(tiers []TimeWindow, w TimeWindow) (TimeWindow, bool) {
	idx := WindowIndex(tiers, w)
	if idx < 0 || idx+1 >= len(tiers) {
		return "", false
	}
	return tiers[idx+1], true
}

func Narrowest(tiers []TimeWindow) TimeWindow {
	if len(tiers) == 0 {
		return ""
	}
	return tiers[len(tiers)-1]
}

// IsNarrower reports whether a is a strictly narrower tier than b.
func IsNarrower(tiers []TimeWindow, a TimeWindow, b TimeWindow) bool {
	return WindowIndex(tiers, a) > WindowIndex(tiers, b)
}
