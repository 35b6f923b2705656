package ledger

// DefaultWeeklyHours is the capacity assumed for profiles that never set one.
const DefaultWeeklyHours = 40.0

// Rates are a profile's resolved hourly rates. Zero means "not configured";
// the calculators treat zero-rate time as free rather than erroring.
type Rates struct {
	Billable float64 `json:"billable_rate"`
	Internal float64 `json:"internal_rate"`
}

// ResolveRates resolves a profile's billable and internal hourly rates,
// defaulting missing fields to 0. A nil profile resolves to zero rates.
// Every calculator goes through here so the defaulting rule lives in one
// place.
func ResolveRates(p *Profile) Rates {
	if p == nil {
		return Rates{}
	}
	return Rates{
		Billable: OrDefault(p.BillableHourlyRate, 0),
		Internal: OrDefault(p.InternalCostPerHour, 0),
	}
}

// WeeklyHours resolves a profile's weekly capacity. Profiles without one
// (or a non-positive one) fall back to the given default.
func WeeklyHours(p *Profile, fallback float64) float64 {
	if fallback <= 0 {
		fallback = DefaultWeeklyHours
	}
	if p == nil || p.WeeklyHours == nil || *p.WeeklyHours <= 0 {
		return fallback
	}
	return *p.WeeklyHours
}

// OrDefault dereferences v, substituting fallback when v is nil.
func OrDefault[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
