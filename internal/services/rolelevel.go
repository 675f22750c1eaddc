package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Seniority ladder, lowest to highest.
const (
	LevelIntern    = "intern"
	LevelJunior    = "junior"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelStaff     = "staff"
	LevelLead      = "lead"
	LevelPrincipal = "principal"
	LevelExecutive = "executive"
)

const (
	ProgressionStepUp   = "step_up"
	ProgressionLateral  = "lateral"
	ProgressionStepDown = "step_down"
)

// RoleLevelAssessment is the structured result of the analyze_role_level
// tool.
type RoleLevelAssessment struct {
	JobLevel       string `json:"jobLevel"`
	CandidateLevel string `json:"candidateLevel"`
	Progression    string `json:"progression"`
	GrowthScore    int    `json:"growthScore"`
	Reasoning      string `json:"reasoning"`
	Recommendation string `json:"recommendation"`
}

type seniorityLevel struct {
	name       string
	rank       int
	indicators []string
}

// Scanned highest rank first so "senior staff engineer" resolves to staff,
// not senior.
var seniorityLadder = []seniorityLevel{
	{LevelExecutive, 8, []string{"cto", "vp of engineering", "vp engineering", "head of engineering", "head of product", "director of"}},
	{LevelPrincipal, 7, []string{"principal", "distinguished"}},
	{LevelLead, 6, []string{"lead ", "team lead", "tech lead", "engineering lead"}},
	{LevelStaff, 5, []string{"staff "}},
	{LevelSenior, 4, []string{"senior", "sr.", "sr "}},
	{LevelMid, 3, []string{"mid-level", "midlevel", "intermediate"}},
	{LevelJunior, 2, []string{"junior", "jr.", "jr ", "entry level", "entry-level", "graduate", "associate"}},
	{LevelIntern, 1, []string{"intern", "internship", "trainee", "working student"}},
}

var yearsPattern = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)

// RoleLevelAnalyzer compares job seniority against candidate seniority.
// Purely heuristic, no network; it exists to ground the growth-potential
// category and to catch mismatches the keyword scorer cannot see, like a
// senior candidate applying to a junior role.
type RoleLevelAnalyzer struct{}

func NewRoleLevelAnalyzer() *RoleLevelAnalyzer {
	return &RoleLevelAnalyzer{}
}

// Analyze infers both seniority levels and the progression between them.
func (r *RoleLevelAnalyzer) Analyze(jobTitle, jobDescription, cvText string) *RoleLevelAssessment {
	jobLevel := levelFromText(jobTitle)
	if jobLevel == nil {
		jobLevel = levelFromYears(jobDescription)
	}
	if jobLevel == nil {
		jobLevel = ladderLevel(LevelMid)
	}

	candidateLevel := levelFromText(cvText)
	if candidateLevel == nil {
		candidateLevel = levelFromYears(cvText)
	}
	if candidateLevel == nil {
		candidateLevel = ladderLevel(LevelMid)
	}

	diff := jobLevel.rank - candidateLevel.rank

	var progression string
	switch {
	case diff > 0:
		progression = ProgressionStepUp
	case diff < 0:
		progression = ProgressionStepDown
	default:
		progression = ProgressionLateral
	}

	score, reasoning, recommendation := growthAssessment(diff, jobLevel.name, candidateLevel.name)

	return &RoleLevelAssessment{
		JobLevel:       jobLevel.name,
		CandidateLevel: candidateLevel.name,
		Progression:    progression,
		GrowthScore:    score,
		Reasoning:      reasoning,
		Recommendation: recommendation,
	}
}

func growthAssessment(diff int, jobLevel, candidateLevel string) (int, string, string) {
	switch {
	case diff == 1:
		return 85,
			fmt.Sprintf("The role is one level above the candidate (%s -> %s), a natural promotion-shaped move.", candidateLevel, jobLevel),
			"Good growth opportunity; worth pursuing."
	case diff == 2:
		return 70,
			fmt.Sprintf("The role is two levels above the candidate (%s -> %s); a stretch, but reachable with strong evidence of scope.", candidateLevel, jobLevel),
			"Ambitious but plausible; emphasize leadership and scope in the application."
	case diff > 2:
		return 50,
			fmt.Sprintf("The role is several levels above the candidate (%s -> %s); the seniority gap is likely disqualifying.", candidateLevel, jobLevel),
			"Significant over-reach; consider roles closer to current level."
	case diff == 0:
		return 60,
			fmt.Sprintf("The role matches the candidate's current level (%s); limited upward growth but low risk.", jobLevel),
			"Safe lateral move; decide based on company and domain appeal."
	case diff == -1:
		return 40,
			fmt.Sprintf("The role sits one level below the candidate (%s -> %s); likely under-leveling.", candidateLevel, jobLevel),
			"Potential step down; clarify scope and compensation before applying."
	default:
		return 25,
			fmt.Sprintf("The role is well below the candidate's level (%s -> %s); a clear seniority mismatch.", candidateLevel, jobLevel),
			"Seniority mismatch; this role would be a regression."
	}
}

func levelFromText(text string) *seniorityLevel {
	lower := strings.ToLower(text)
	for i := range seniorityLadder {
		for _, indicator := range seniorityLadder[i].indicators {
			if strings.Contains(lower, indicator) {
				return &seniorityLadder[i]
			}
		}
	}
	return nil
}

func levelFromYears(text string) *seniorityLevel {
	match := yearsPattern.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return nil
	}
	years, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	switch {
	case years < 2:
		return ladderLevel(LevelJunior)
	case years < 5:
		return ladderLevel(LevelMid)
	case years < 8:
		return ladderLevel(LevelSenior)
	default:
		return ladderLevel(LevelStaff)
	}
}

func ladderLevel(name string) *seniorityLevel {
	for i := range seniorityLadder {
		if seniorityLadder[i].name == name {
			return &seniorityLadder[i]
		}
	}
	return &seniorityLadder[len(seniorityLadder)-1]
}
