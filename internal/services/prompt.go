package services

import (
	"fmt"
	"strings"

	"jobtrackr/fit-engine/internal/models"
)

// PromptBuilder renders the analysis instruction template. The template and
// both few-shot examples are fixed; only the job and CV content vary.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const analysisSystemInstruction = `You are an expert career advisor who evaluates how well a job posting fits a specific candidate.

You have three tools available:
- extract_skills: canonical skill tagging for any text
- calculate_similarity: semantic similarity (0-100) between two texts
- analyze_role_level: seniority comparison between the job and the candidate

Use the tools to ground your judgment before answering. When you are done, respond with ONLY a JSON object in the exact shape shown in the examples. No prose before or after the JSON.`

// Few-shot: a strong match, so the model sees what a confident high
// recommendation looks like.
const fewShotHighFit = `EXAMPLE 1 (strong fit):
Job: "Senior Backend Engineer at a payments startup. Go, PostgreSQL, Kubernetes, event-driven architecture. 5+ years experience."
CV: "Backend engineer, 6 years. Built Go microservices processing 40M events/day, PostgreSQL, Kafka, Kubernetes on AWS. Led a team of 3."

{
  "overall_score": 88,
  "overall_stars": 4,
  "recommendation": "high",
  "role_alignment": {"score": 92, "stars": 5, "reasoning": "Senior backend role matches six years of backend ownership, including team leadership."},
  "technical_match": {"score": 90, "stars": 5, "reasoning": "Go, PostgreSQL and Kubernetes all appear with production depth; Kafka covers the event-driven requirement."},
  "company_fit": {"score": 80, "stars": 4, "reasoning": "High-throughput event processing experience maps directly onto a payments workload."},
  "growth_potential": {"score": 85, "stars": 4, "reasoning": "Scope grows from service ownership toward platform ownership without being an over-reach."},
  "practical_factors": {"score": 75, "stars": 4, "reasoning": "No blockers visible; compensation and location unstated."},
  "strong_matches": ["Go microservices at scale", "PostgreSQL", "Kubernetes", "event-driven systems", "team leadership"],
  "gaps": ["no direct payments domain experience"],
  "red_flags": [],
  "application_strategy": "Lead with the 40M events/day figure and the Kafka pipeline; frame payments as an application of the same reliability discipline.",
  "talking_points": ["Scaling Go services", "Exactly-once event processing", "Growing a small team"]
}`

// Few-shot: a seniority mismatch that still has keyword overlap, so the
// model learns that overlap alone does not justify a recommendation.
const fewShotSeniorityMismatch = `EXAMPLE 2 (pass despite keyword overlap):
Job: "Junior Web Developer. HTML, CSS, JavaScript, React basics. 0-2 years experience."
CV: "Principal engineer, 14 years. React core contributor, led frontend platform for 200 engineers, HTML/CSS/JavaScript expert."

{
  "overall_score": 34,
  "overall_stars": 1,
  "recommendation": "pass",
  "role_alignment": {"score": 20, "stars": 1, "reasoning": "A principal engineer in a junior role is a severe seniority mismatch in both directions."},
  "technical_match": {"score": 95, "stars": 5, "reasoning": "Every listed technology is covered far beyond the role's needs."},
  "company_fit": {"score": 40, "stars": 2, "reasoning": "The team is hiring for growth potential, not for platform leadership."},
  "growth_potential": {"score": 5, "stars": 1, "reasoning": "The role offers no growth; it is several levels below current scope."},
  "practical_factors": {"score": 25, "stars": 1, "reasoning": "Compensation for a junior position cannot match a principal's expectations."},
  "strong_matches": ["React", "JavaScript", "HTML/CSS"],
  "gaps": [],
  "red_flags": ["role is 4+ levels below the candidate's current seniority"],
  "application_strategy": "Do not apply; look for staff/principal or engineering-lead roles instead.",
  "talking_points": []
}`

// SystemInstruction returns the fixed system text for the analysis
// conversation.
func (pb *PromptBuilder) SystemInstruction() string {
	return analysisSystemInstruction
}

// BuildAnalysisPrompt renders the user message: rubric, few-shot examples,
// then the actual job and CV.
func (pb *PromptBuilder) BuildAnalysisPrompt(job *models.JobPosting, cvText string) string {
	techStack := "not listed"
	if len(job.TechStack) > 0 {
		techStack = strings.Join(job.TechStack, ", ")
	}

	location := job.Location
	if job.Remote {
		location = strings.TrimSpace(location + " (remote)")
	}

	return fmt.Sprintf(`Score this job against this candidate across five categories, each 0-100:

1. role_alignment (weight 30%%) - does the role match what the candidate actually does?
2. technical_match (weight 25%%) - required technologies vs demonstrated experience
3. company_fit (weight 20%%) - domain, product and working-style fit
4. growth_potential (weight 15%%) - is this a sensible next step in the career arc?
5. practical_factors (weight 10%%) - location, remote policy, visible blockers

overall_score must be the weighted sum of the five category scores.
Stars: 90-100 five, 75-89 four, 60-74 three, 40-59 two, below 40 one.
Recommendation: 75+ "high", 50-74 "medium", 40-49 "low", below 40 "pass".

%s

%s

Now the real input.

JOB POSTING:
Company: %s
Title: %s
Location: %s
Tech stack: %s

Description:
%s

Requirements:
%s

CANDIDATE CV:
%s

Use the tools as needed, then return the final JSON object.`,
		fewShotHighFit,
		fewShotSeniorityMismatch,
		job.Company,
		job.Title,
		location,
		techStack,
		job.Description,
		job.Requirements,
		cvText,
	)
}
