package models

import "strings"

// MentalState is one of the canonical classification labels.
type MentalState string

const (
	Stressed MentalState = "Stressed"
	Relaxed  MentalState = "Relaxed"
	Happy    MentalState = "Happy"
	Sad      MentalState = "Sad"
	Focused  MentalState = "Focused"
	Tired    MentalState = "Tired"
	Neutral  MentalState = "Neutral"
)

// OfflineSuffix is appended to the label when the rule-based path answered.
const OfflineSuffix = " (Offline Mode)"

// MentalStates lists the canonical labels in declaration order.
var MentalStates = []MentalState{Stressed, Relaxed, Happy, Sad, Focused, Tired, Neutral}

func (m MentalState) String() string {
	return string(m)
}

// Offline returns the display label used by the rule-based path.
func (m MentalState) Offline() string {
	return string(m) + OfflineSuffix
}

// ParseMentalState matches s against the canonical labels, ignoring case,
// surrounding whitespace, markdown emphasis and trailing punctuation.
func ParseMentalState(s string) (MentalState, bool) {
	s = strings.Trim(strings.TrimSpace(s), "*_`\"'.!:;, ")
	for _, m := range MentalStates {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

// IsCanonicalLabel reports whether label is a canonical state, optionally
// followed by the offline suffix.
func IsCanonicalLabel(label string) bool {
	_, ok := ParseMentalState(strings.TrimSuffix(label, OfflineSuffix))
	return ok
}
