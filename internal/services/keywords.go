package services

import "sort"

// keywordWeights maps job-posting keywords and phrases to point values.
// Heavier weights go to terms that signal seniority or specialised impact,
// lighter ones to commodity skills. Loaded once; never mutated at runtime.
var keywordWeights = map[string]int{
	// AI / ML
	"machine learning":   25,
	"deep learning":      24,
	"llm":                22,
	"large language":     22,
	"fine-tuning":        18,
	"prompt engineering": 16,
	"rag":                16,
	"nlp":                18,
	"computer vision":    18,
	"pytorch":            20,
	"tensorflow":         18,
	"transformers":       18,
	"mlops":              16,
	"data science":       16,
	"recommendation systems": 15,

	// Languages
	"golang":     16,
	"python":     14,
	"typescript": 13,
	"javascript": 11,
	"java":       12,
	"kotlin":     12,
	"rust":       15,
	"c++":        14,
	"c#":         12,
	"ruby":       10,
	"php":        8,
	"scala":      13,
	"swift":      12,
	"sql":        10,

	// Backend / systems
	"distributed systems": 22,
	"microservices":       14,
	"api design":          13,
	"rest":                8,
	"graphql":             11,
	"grpc":                13,
	"websocket":           10,
	"event-driven":        13,
	"message queue":       11,
	"kafka":               14,
	"rabbitmq":            11,
	"concurrency":         14,
	"performance tuning":  14,
	"caching":             10,
	"system design":       16,
	"scalability":         13,

	// Data stores
	"postgresql":    12,
	"postgres":      12,
	"mysql":         10,
	"mongodb":       10,
	"redis":         11,
	"elasticsearch": 12,
	"dynamodb":      11,
	"data modeling": 11,
	"data pipeline": 13,
	"etl":           11,
	"data warehouse": 12,
	"spark":         13,

	// Cloud / infra
	"aws":            13,
	"gcp":            12,
	"azure":          11,
	"kubernetes":     15,
	"docker":         11,
	"terraform":      13,
	"ci/cd":          11,
	"serverless":     11,
	"lambda":         10,
	"infrastructure as code": 13,
	"observability":  12,
	"monitoring":     9,
	"site reliability": 15,
	"devops":         12,
	"linux":          9,

	// Frontend
	"react":        12,
	"react native": 12,
	"vue":          10,
	"angular":      10,
	"next.js":      11,
	"frontend architecture": 13,
	"accessibility": 10,
	"responsive design": 8,
	"css":           6,
	"html":          6,
	"webpack":       7,
	"tailwind":      7,

	// Mobile
	"ios":     11,
	"android": 11,
	"flutter": 11,

	// Testing / quality
	"unit testing":      9,
	"integration testing": 9,
	"test automation":   11,
	"tdd":               10,
	"code review":       8,

	// Security
	"security":       11,
	"authentication": 9,
	"oauth":          9,
	"encryption":     10,
	"penetration testing": 14,

	// Product / design
	"product management": 14,
	"user research":      11,
	"ux":                 10,
	"ui design":          10,
	"figma":              8,
	"design systems":     11,
	"prototyping":        8,
	"a/b testing":        11,
	"analytics":          10,
	"seo":                8,

	// Leadership / seniority
	"technical leadership": 20,
	"mentoring":            12,
	"team lead":            15,
	"staff engineer":       20,
	"principal":            20,
	"architecture":         16,
	"roadmap":              10,
	"stakeholder":          9,
	"cross-functional":     9,
	"hiring":               9,
	"engineering management": 18,

	// Ways of working
	"agile":          7,
	"scrum":          7,
	"remote":         6,
	"open source":    10,
	"documentation":  7,
	"communication":  7,
	"problem solving": 7,
	"research":       8,
	"startup":        8,
	"greenfield":     9,
}

// techStackBonus is added to both sides of the score for every tech_stack
// entry the CV also mentions.
const techStackBonus = 4

// orderedKeywords iterates the weight table deterministically: heaviest
// first, ties alphabetical. Keeps strong_matches/gaps ordering stable between
// runs of the pure scorer.
var orderedKeywords = func() []string {
	keys := make([]string, 0, len(keywordWeights))
	for k := range keywordWeights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, wj := keywordWeights[keys[i]], keywordWeights[keys[j]]
		if wi != wj {
			return wi > wj
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// technicalTitleIndicators exempt a posting from the domain-mismatch guard.
// An ML role at a hospital is still an ML role.
var technicalTitleIndicators = []string{
	"engineer",
	"developer",
	"programmer",
	"architect",
	"data scientist",
	"machine learning",
	"ml ",
	"ai ",
	"sre",
	"devops",
	"sysadmin",
	"software",
	"full stack",
	"fullstack",
	"backend",
	"frontend",
	"qa",
}

// domainGuard describes one fundamentally non-transferable professional
// domain. A mismatch fires only when at least two distinct job-side keywords
// occur in the posting and none of the CV-side keywords occur in the CV.
type domainGuard struct {
	name        string
	gapLabel    string
	jobKeywords []string
	cvKeywords  []string
}

var domainGuards = []domainGuard{
	{
		name:     "political",
		gapLabel: "political/policy experience",
		jobKeywords: []string{
			"political", "policy", "legislative", "legislation", "campaign",
			"public affairs", "government relations", "lobbying", "advocacy",
			"constituent",
		},
		cvKeywords: []string{
			"political", "policy", "legislative", "campaign", "government",
			"public affairs", "advocacy",
		},
	},
	{
		name:     "medical",
		gapLabel: "medical/clinical experience",
		jobKeywords: []string{
			"clinical", "patient", "medical", "physician", "nursing",
			"healthcare provider", "diagnosis", "pharmaceutical", "fda",
			"hipaa",
		},
		cvKeywords: []string{
			"clinical", "patient", "medical", "nurse", "physician",
			"healthcare", "pharma",
		},
	},
	{
		name:     "legal",
		gapLabel: "legal experience",
		jobKeywords: []string{
			"attorney", "litigation", "paralegal", "law firm", "legal counsel",
			"juris", "court", "contract law", "compliance counsel",
		},
		cvKeywords: []string{
			"attorney", "litigation", "paralegal", "legal", "law", "juris",
		},
	},
	{
		name:     "finance",
		gapLabel: "finance/accounting experience",
		jobKeywords: []string{
			"accounting", "audit", "cpa", "financial reporting", "bookkeeping",
			"underwriting", "actuarial", "portfolio management", "tax",
		},
		cvKeywords: []string{
			"accounting", "audit", "cpa", "financial", "bookkeeping",
			"underwriting", "actuarial", "tax",
		},
	},
}

// transferableSkills survive a domain mismatch: when the guard fires, the
// reported strong matches are reduced to this overlap.
var transferableSkills = []string{
	"communication",
	"documentation",
	"analytics",
	"research",
	"stakeholder",
	"cross-functional",
	"mentoring",
	"problem solving",
	"roadmap",
	"hiring",
}
