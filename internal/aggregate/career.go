package aggregate

import "github.com/Veraticus/harmony/internal/model"

// CareerInputs are the counts the readiness score is computed from.
type CareerInputs struct {
	Preferences  model.CareerPreferences
	Skills       int
	Experiences  int
	Applications int
}

// CareerReadiness scores career preparation on a 0-100 scale:
// interests 10, target roles 10, resume 15, skills up to 20 (4 each),
// experiences up to 25 (8 each), network up to 10 (1 per 5 contacts) and
// applications up to 10 (2 each).
func CareerReadiness(in CareerInputs) float64 {
	score := 0.0
	if len(in.Preferences.Interests) > 0 {
		score += 10
	}
	if len(in.Preferences.TargetRoles) > 0 {
		score += 10
	}
	if in.Preferences.Resume != "" {
		score += 15
	}
	score += minf(20, 4*float64(in.Skills))
	score += minf(25, 8*float64(in.Experiences))
	score += minf(10, float64(in.Preferences.NetworkSize)/5)
	score += minf(10, 2*float64(in.Applications))
	return clamp(score, 0, 100)
}

// CountApplications counts opportunities whose status is model.OpportunityApplied.
func CountApplications(opps []model.Opportunity) int {
	n := 0
	for _, o := range opps {
		if o.Status == model.OpportunityApplied {
			n++
		}
	}
	return n
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
