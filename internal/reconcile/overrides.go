package reconcile

// DefaultOverrides is the hand-maintained mapping for source labels whose
// naming diverges too far from the canonical CBSA titles for the scorer to
// bridge: heavily multi-city titles, and city names duplicated across states
// where the informal label implies one specific state.
//
// Keys are exact source labels; an override short-circuits all fuzzy matching
// for that label.
func DefaultOverrides() map[string]string {
	return map[string]string{
		"Las Vegas":         "Las Vegas-Henderson-North Las Vegas, NV Metro Area",
		"Las Vegas, NV":     "Las Vegas-Henderson-North Las Vegas, NV Metro Area",
		"New York":          "New York-Newark-Jersey City, NY-NJ Metro Area",
		"New York, NY":      "New York-Newark-Jersey City, NY-NJ Metro Area",
		"Los Angeles":       "Los Angeles-Long Beach-Anaheim, CA Metro Area",
		"Los Angeles, CA":   "Los Angeles-Long Beach-Anaheim, CA Metro Area",
		"Dallas":            "Dallas-Fort Worth-Arlington, TX Metro Area",
		"Dallas, TX":        "Dallas-Fort Worth-Arlington, TX Metro Area",
		"Washington, DC":    "Washington-Arlington-Alexandria, DC-VA-MD-WV Metro Area",
		"Miami":             "Miami-Fort Lauderdale-West Palm Beach, FL Metro Area",
		"Miami, FL":         "Miami-Fort Lauderdale-West Palm Beach, FL Metro Area",
		"Minneapolis":       "Minneapolis-St. Paul-Bloomington, MN-WI Metro Area",
		"Minneapolis, MN":   "Minneapolis-St. Paul-Bloomington, MN-WI Metro Area",
		"San Francisco":     "San Francisco-Oakland-Fremont, CA Metro Area",
		"San Francisco, CA": "San Francisco-Oakland-Fremont, CA Metro Area",
		"Norfolk, VA":       "Virginia Beach-Chesapeake-Norfolk, VA-NC Metro Area",
		"Sarasota, FL":      "North Port-Bradenton-Sarasota, FL Metro Area",
	}
}

// DefaultConfusables lists canonical labels that share a city name with a
// better-known entity in a different state. Such a label is excluded from
// fuzzy candidacy whenever the override table already claims the shared city
// name, preventing the scorer from picking the wrong state.
func DefaultConfusables() []string {
	return []string{
		"Las Vegas, NM Micro Area",
	}
}
