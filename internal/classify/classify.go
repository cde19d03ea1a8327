package classify

import "strings"

// ProblemType is the CRM's closed problem taxonomy for kiosk tickets.
type ProblemType string

const (
	ProblemVirus    ProblemType = "Virus"
	ProblemTuneUp   ProblemType = "TuneUp"
	ProblemOther    ProblemType = "Other"
	ProblemSoftware ProblemType = "Software"
)

// rule order is a tie-break policy: a reason mentioning both "virus" and
// "battery" must classify as Virus.
var rules = []struct {
	keywords []string
	problem  ProblemType
}{
	{[]string{"virus", "malware", "ransom"}, ProblemVirus},
	{[]string{"tune"}, ProblemTuneUp},
	{[]string{"battery", "screen", "hardware"}, ProblemOther},
}

// Problem maps a free-form visit reason to a ProblemType. Unmatched or empty
// input falls through to Software.
func Problem(reason string) ProblemType {
	r := strings.ToLower(reason)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(r, kw) {
				return rule.problem
			}
		}
	}
	return ProblemSoftware
}
