package activity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatRateChange renders a daily-rate change as "$100 → $120 (+20.0%)".
// A prior rate of zero has no meaningful percentage and renders as "N/A".
func FormatRateChange(oldRate, newRate float64) string {
	pct := "N/A"
	if oldRate != 0 {
		delta := (newRate - oldRate) / oldRate * 100
		sign := "+"
		if delta < 0 {
			sign = "-"
			delta = -delta
		}
		pct = fmt.Sprintf("%s%.1f%%", sign, delta)
	}
	return fmt.Sprintf("$%s → $%s (%s)", formatMoney(oldRate), formatMoney(newRate), pct)
}

// PricingDescription builds the audit line for a pricing change-set.
func PricingDescription(old, new map[string]interface{}) string {
	if o, ok := floatValue(old["daily_rate"]); ok {
		if n, ok2 := floatValue(new["daily_rate"]); ok2 {
			return "Daily rate changed: " + FormatRateChange(o, n)
		}
	}
	return "Pricing updated: " + fieldList(new)
}

// FeaturesDescription builds the audit line for a set-style features diff.
func FeaturesDescription(added, removed []string) string {
	parts := make([]string, 0, 2)
	if len(added) > 0 {
		parts = append(parts, "added "+strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		parts = append(parts, "removed "+strings.Join(removed, ", "))
	}
	if len(parts) == 0 {
		return "Features unchanged"
	}
	return "Features updated: " + strings.Join(parts, "; ")
}

// GroupDescription builds the audit line for a non-pricing field-group change.
func GroupDescription(label string, new map[string]interface{}) string {
	return label + " updated: " + fieldList(new)
}

func fieldList(values map[string]interface{}) string {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floatValue(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
