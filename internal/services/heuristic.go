package services

import (
	"fmt"
	"math"
	"strings"

	"jobtrackr/fit-engine/internal/models"
)

const (
	// Jobs whose description+requirements fall under this length are scored 0
	// instead of guessing from nothing.
	minUsableJobText = 20

	// Ceiling applied when a domain mismatch fires. Keyword overlap elsewhere
	// can never push the score above it.
	domainMismatchCap = 28

	maxStrongMatches = 10
	maxGaps          = 5
)

// HeuristicAligner scores keyword overlap between a job posting and a CV.
// It is pure: no I/O, no external calls, identical inputs give identical
// output. The LLM path uses it as a cheap signal; callers can also use it
// standalone for bulk scoring.
type HeuristicAligner struct{}

func NewHeuristicAligner() *HeuristicAligner {
	return &HeuristicAligner{}
}

// Align computes the alignment between job and cvText.
func (h *HeuristicAligner) Align(job *models.JobPosting, cvText string) *models.HeuristicAlignment {
	if len(strings.TrimSpace(job.Description+job.Requirements)) < minUsableJobText {
		return &models.HeuristicAlignment{
			Score:          0,
			StrongMatches:  []string{},
			Gaps:           []string{},
			Recommendation: models.RecommendationLow,
			Reasoning:      "Job posting has no usable description or requirements, so no meaningful alignment score can be computed.",
		}
	}

	jobText := normalizeText(job.Title + " " + job.Description + " " + job.Requirements)
	cv := normalizeText(cvText)

	mismatch := h.detectDomainMismatch(job.Title, jobText, cv)

	earned := 0
	maxPossible := 0
	keywordSeen := false
	var matches, gaps []string

	for _, kw := range orderedKeywords {
		if !strings.Contains(jobText, kw) {
			continue
		}
		keywordSeen = true
		weight := keywordWeights[kw]
		maxPossible += weight
		if strings.Contains(cv, kw) {
			earned += weight
			matches = append(matches, kw)
		} else {
			gaps = append(gaps, kw)
		}
	}

	for _, tech := range job.TechStack {
		t := normalizeText(tech)
		if t == "" {
			continue
		}
		if strings.Contains(cv, t) {
			earned += techStackBonus
			maxPossible += techStackBonus
		}
	}

	// A non-trivial posting that hits no dictionary entry still needs a sane
	// denominator; otherwise a single lucky tech-stack overlap would read as
	// a near-perfect match.
	if !keywordSeen && maxPossible < 100 {
		maxPossible = 100
	}

	score := int(math.Round(100 * float64(earned) / float64(maxPossible)))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if mismatch != nil {
		return h.mismatchAlignment(mismatch, score, matches)
	}

	if len(matches) > maxStrongMatches {
		matches = matches[:maxStrongMatches]
	}
	if len(gaps) > maxGaps {
		gaps = gaps[:maxGaps]
	}
	if matches == nil {
		matches = []string{}
	}
	if gaps == nil {
		gaps = []string{}
	}

	rec, reasoning := recommendationForAlignment(score)

	return &models.HeuristicAlignment{
		Score:          score,
		StrongMatches:  matches,
		Gaps:           gaps,
		Recommendation: rec,
		Reasoning:      reasoning,
	}
}

// detectDomainMismatch returns the guard that fired, or nil. The guard needs
// at least two distinct domain keywords in the posting and zero of the
// domain's markers in the CV; technical job titles are always exempt.
func (h *HeuristicAligner) detectDomainMismatch(title, jobText, cv string) *domainGuard {
	lowerTitle := strings.ToLower(title)
	for _, indicator := range technicalTitleIndicators {
		if strings.Contains(lowerTitle, indicator) {
			return nil
		}
	}

	for i := range domainGuards {
		guard := &domainGuards[i]

		hits := 0
		for _, kw := range guard.jobKeywords {
			if strings.Contains(jobText, kw) {
				hits++
			}
		}
		if hits < 2 {
			continue
		}

		cvHasDomain := false
		for _, kw := range guard.cvKeywords {
			if strings.Contains(cv, kw) {
				cvHasDomain = true
				break
			}
		}
		if !cvHasDomain {
			return guard
		}
	}

	return nil
}

func (h *HeuristicAligner) mismatchAlignment(guard *domainGuard, score int, matches []string) *models.HeuristicAlignment {
	if score > domainMismatchCap {
		score = domainMismatchCap
	}

	transferable := []string{}
	for _, m := range matches {
		for _, t := range transferableSkills {
			if m == t {
				transferable = append(transferable, m)
				break
			}
		}
	}
	if len(transferable) > maxStrongMatches {
		transferable = transferable[:maxStrongMatches]
	}

	return &models.HeuristicAlignment{
		Score:          score,
		StrongMatches:  transferable,
		Gaps:           []string{guard.gapLabel},
		Recommendation: models.RecommendationLow,
		Reasoning: fmt.Sprintf(
			"This role centers on %s work and the CV shows no %s. Only transferable skills were counted, capping the score at %d%%.",
			guard.name, guard.gapLabel, score,
		),
	}
}

func recommendationForAlignment(score int) (models.Recommendation, string) {
	switch {
	case score >= 70:
		return models.RecommendationHigh, fmt.Sprintf(
			"Strong alignment (%d%%): the CV covers most of the high-value requirements in this posting.", score)
	case score >= 50:
		return models.RecommendationMedium, fmt.Sprintf(
			"Moderate alignment (%d%%): several requirements match but notable gaps remain.", score)
	default:
		return models.RecommendationLow, fmt.Sprintf(
			"Weak alignment (%d%%): the CV matches few of the posting's weighted requirements.", score)
	}
}

// normalizeText lowercases and collapses all whitespace runs to single
// spaces so multi-word keywords match across line breaks.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
