// Package classify buckets numeric company metrics into named tiers.
package classify

// Revenue classifies annual revenue (USD) into a tier label.
func Revenue(v float64) string {
	switch {
	case v < 10_000_000:
		return "micro"
	case v < 50_000_000:
		return "small"
	case v < 250_000_000:
		return "medium"
	case v < 1_000_000_000:
		return "large"
	default:
		return "enterprise"
	}
}

// FleetSize classifies a managed-vehicle count into a tier label.
func FleetSize(v float64) string {
	switch {
	case v < 1_000:
		return "micro"
	case v < 10_000:
		return "small"
	case v < 100_000:
		return "medium"
	case v < 500_000:
		return "large"
	case v < 1_000_000:
		return "very-large"
	default:
		return "enterprise"
	}
}

// Valuation classifies a company valuation (USD) into a tier label.
func Valuation(v float64) string {
	switch {
	case v < 50_000_000:
		return "small"
	case v < 500_000_000:
		return "medium"
	case v < 1_000_000_000:
		return "large"
	case v < 5_000_000_000:
		return "unicorn"
	default:
		return "mega-unicorn"
	}
}
