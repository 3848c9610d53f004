package compliance

import "github.com/Ayush-Rawat-9/Charter-Party/model"

// statusWeight is the completeness credit per item status. Weights are
// ordered so an item moving toward "present" never lowers a score.
func statusWeight(status string) float64 {
	switch status {
	case model.StatusPresent:
		return 1.0
	case model.StatusIncomplete:
		return 0.5
	case model.StatusConflicting:
		return 0.25
	default: // missing
		return 0
	}
}

// Score computes per-category and overall compliance scores (0-100) from
// the classified items. Overall is the unweighted mean of the three
// category scores, so improving any item is monotonic on the overall.
func Score(items []model.ComplianceItem) model.ComplianceScores {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, item := range items {
		sums[item.Category] += statusWeight(item.Status)
		counts[item.Category]++
	}

	score := func(category string) int {
		if counts[category] == 0 {
			return 0
		}
		return int(sums[category] / float64(counts[category]) * 100)
	}

	scores := model.ComplianceScores{
		Commercial:  score(model.CategoryCommercial),
		Legal:       score(model.CategoryLegal),
		Operational: score(model.CategoryOperational),
	}
	scores.Overall = (scores.Commercial + scores.Legal + scores.Operational) / 3
	return scores
}

// CriticalIssues lists the items that must be addressed before the
// contract can be executed: critical-impact problems and missing or
// conflicting mandatory items.
func CriticalIssues(items []model.ComplianceItem) []string {
	var issues []string
	for _, item := range items {
		if item.Status == model.StatusPresent {
			continue
		}
		mandatory := item.Impact == model.ImpactCritical || item.Impact == model.ImpactHigh
		if item.Impact == model.ImpactCritical ||
			(mandatory && (item.Status == model.StatusMissing || item.Status == model.StatusConflicting)) {
			issues = append(issues, item.Requirement+": "+item.Status)
		}
	}
	return issues
}
