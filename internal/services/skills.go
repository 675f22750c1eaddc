package services

import (
	"sort"
	"strings"
	"unicode"
)

// Skill categories. Every canonical skill belongs to exactly one.
const (
	CategoryLanguages      = "languages"
	CategoryFrontend       = "frontend"
	CategoryBackend        = "backend"
	CategoryDatabases      = "databases"
	CategoryCloud          = "cloud"
	CategoryDesignTools    = "design_tools"
	CategoryDesignConcepts = "design_concepts"
	CategoryAIML           = "ai_ml"
	CategoryTesting        = "testing"
	CategoryLeadership     = "leadership"
	CategoryMethodology    = "methodology"
)

// SkillExtraction is the structured result handed back to the model when it
// calls the extract_skills tool.
type SkillExtraction struct {
	Skills          []string            `json:"skills"`
	SkillCategories map[string][]string `json:"skillCategories"`
	Confidence      string              `json:"confidence"`
}

type skillEntry struct {
	name     string
	category string
	synonyms []string
}

// skillDictionary maps canonical skill names to their synonym keywords. The
// first synonym found in the text claims the skill; later synonyms are not
// checked, so a skill is never counted twice.
var skillDictionary = []skillEntry{
	// languages
	{"Go", CategoryLanguages, []string{"golang", "go"}},
	{"Python", CategoryLanguages, []string{"python"}},
	{"JavaScript", CategoryLanguages, []string{"javascript", "js", "es6"}},
	{"TypeScript", CategoryLanguages, []string{"typescript", "ts"}},
	{"Java", CategoryLanguages, []string{"java"}},
	{"Kotlin", CategoryLanguages, []string{"kotlin"}},
	{"Swift", CategoryLanguages, []string{"swift"}},
	{"Rust", CategoryLanguages, []string{"rust"}},
	{"C++", CategoryLanguages, []string{"c++", "cpp"}},
	{"C#", CategoryLanguages, []string{"c#", ".net", "dotnet"}},
	{"Ruby", CategoryLanguages, []string{"ruby", "rails"}},
	{"PHP", CategoryLanguages, []string{"php", "laravel"}},
	{"Scala", CategoryLanguages, []string{"scala"}},
	{"SQL", CategoryLanguages, []string{"sql"}},
	{"R", CategoryLanguages, []string{"r"}},
	{"Bash", CategoryLanguages, []string{"bash", "shell scripting"}},

	// frontend
	{"React", CategoryFrontend, []string{"react", "react.js", "reactjs"}},
	{"Vue", CategoryFrontend, []string{"vue", "vue.js", "vuejs"}},
	{"Angular", CategoryFrontend, []string{"angular"}},
	{"Next.js", CategoryFrontend, []string{"next.js", "nextjs"}},
	{"Svelte", CategoryFrontend, []string{"svelte"}},
	{"HTML", CategoryFrontend, []string{"html", "html5"}},
	{"CSS", CategoryFrontend, []string{"css", "css3", "sass", "scss"}},
	{"Tailwind", CategoryFrontend, []string{"tailwind", "tailwindcss"}},
	{"Redux", CategoryFrontend, []string{"redux"}},
	{"Webpack", CategoryFrontend, []string{"webpack", "vite"}},
	{"React Native", CategoryFrontend, []string{"react native"}},
	{"Flutter", CategoryFrontend, []string{"flutter", "dart"}},

	// backend
	{"Node.js", CategoryBackend, []string{"node.js", "nodejs", "node"}},
	{"Express", CategoryBackend, []string{"express", "express.js"}},
	{"Django", CategoryBackend, []string{"django"}},
	{"Flask", CategoryBackend, []string{"flask"}},
	{"FastAPI", CategoryBackend, []string{"fastapi"}},
	{"Spring", CategoryBackend, []string{"spring", "spring boot"}},
	{"GraphQL", CategoryBackend, []string{"graphql"}},
	{"REST APIs", CategoryBackend, []string{"rest", "restful", "rest api"}},
	{"gRPC", CategoryBackend, []string{"grpc", "protobuf"}},
	{"Microservices", CategoryBackend, []string{"microservices", "microservice"}},
	{"Kafka", CategoryBackend, []string{"kafka"}},
	{"RabbitMQ", CategoryBackend, []string{"rabbitmq", "amqp"}},
	{"WebSockets", CategoryBackend, []string{"websocket", "websockets"}},
	{"Distributed Systems", CategoryBackend, []string{"distributed systems", "distributed computing"}},

	// databases
	{"PostgreSQL", CategoryDatabases, []string{"postgresql", "postgres"}},
	{"MySQL", CategoryDatabases, []string{"mysql", "mariadb"}},
	{"MongoDB", CategoryDatabases, []string{"mongodb", "mongo"}},
	{"Redis", CategoryDatabases, []string{"redis"}},
	{"Elasticsearch", CategoryDatabases, []string{"elasticsearch", "opensearch"}},
	{"DynamoDB", CategoryDatabases, []string{"dynamodb"}},
	{"SQLite", CategoryDatabases, []string{"sqlite"}},
	{"Cassandra", CategoryDatabases, []string{"cassandra"}},
	{"Snowflake", CategoryDatabases, []string{"snowflake"}},
	{"BigQuery", CategoryDatabases, []string{"bigquery"}},

	// cloud
	{"AWS", CategoryCloud, []string{"aws", "amazon web services"}},
	{"GCP", CategoryCloud, []string{"gcp", "google cloud"}},
	{"Azure", CategoryCloud, []string{"azure"}},
	{"Docker", CategoryCloud, []string{"docker", "containers"}},
	{"Kubernetes", CategoryCloud, []string{"kubernetes", "k8s"}},
	{"Terraform", CategoryCloud, []string{"terraform"}},
	{"CI/CD", CategoryCloud, []string{"ci/cd", "cicd", "github actions", "jenkins"}},
	{"Serverless", CategoryCloud, []string{"serverless", "lambda", "cloud functions"}},
	{"Linux", CategoryCloud, []string{"linux", "unix"}},
	{"Nginx", CategoryCloud, []string{"nginx"}},
	{"Monitoring", CategoryCloud, []string{"prometheus", "grafana", "datadog", "observability"}},

	// design tools
	{"Figma", CategoryDesignTools, []string{"figma"}},
	{"Sketch", CategoryDesignTools, []string{"sketch"}},
	{"Adobe XD", CategoryDesignTools, []string{"adobe xd"}},
	{"Photoshop", CategoryDesignTools, []string{"photoshop"}},
	{"Illustrator", CategoryDesignTools, []string{"illustrator"}},

	// design concepts
	{"UX Design", CategoryDesignConcepts, []string{"ux", "user experience"}},
	{"UI Design", CategoryDesignConcepts, []string{"ui design", "user interface"}},
	{"User Research", CategoryDesignConcepts, []string{"user research", "usability testing"}},
	{"Design Systems", CategoryDesignConcepts, []string{"design system", "design systems"}},
	{"Prototyping", CategoryDesignConcepts, []string{"prototyping", "wireframing", "wireframes"}},
	{"Accessibility", CategoryDesignConcepts, []string{"accessibility", "wcag", "a11y"}},

	// ai/ml
	{"Machine Learning", CategoryAIML, []string{"machine learning", "ml"}},
	{"Deep Learning", CategoryAIML, []string{"deep learning", "neural networks"}},
	{"NLP", CategoryAIML, []string{"nlp", "natural language processing"}},
	{"Computer Vision", CategoryAIML, []string{"computer vision", "opencv"}},
	{"LLMs", CategoryAIML, []string{"llm", "llms", "large language models"}},
	{"PyTorch", CategoryAIML, []string{"pytorch", "torch"}},
	{"TensorFlow", CategoryAIML, []string{"tensorflow", "keras"}},
	{"Data Science", CategoryAIML, []string{"data science", "pandas", "numpy"}},
	{"MLOps", CategoryAIML, []string{"mlops", "model deployment"}},
	{"Prompt Engineering", CategoryAIML, []string{"prompt engineering", "rag", "fine-tuning"}},

	// testing
	{"Unit Testing", CategoryTesting, []string{"unit testing", "unit tests", "jest", "pytest"}},
	{"Integration Testing", CategoryTesting, []string{"integration testing", "integration tests"}},
	{"E2E Testing", CategoryTesting, []string{"e2e", "end-to-end testing", "cypress", "playwright", "selenium"}},
	{"TDD", CategoryTesting, []string{"tdd", "test-driven"}},
	{"QA", CategoryTesting, []string{"quality assurance", "qa"}},

	// leadership
	{"Team Leadership", CategoryLeadership, []string{"team lead", "tech lead", "team leadership"}},
	{"Mentoring", CategoryLeadership, []string{"mentoring", "mentorship", "coaching"}},
	{"Project Management", CategoryLeadership, []string{"project management", "program management"}},
	{"Product Management", CategoryLeadership, []string{"product management", "product owner"}},
	{"Hiring", CategoryLeadership, []string{"hiring", "interviewing", "recruiting"}},
	{"Stakeholder Management", CategoryLeadership, []string{"stakeholder", "stakeholders"}},

	// methodology
	{"Agile", CategoryMethodology, []string{"agile"}},
	{"Scrum", CategoryMethodology, []string{"scrum"}},
	{"Kanban", CategoryMethodology, []string{"kanban"}},
	{"Code Review", CategoryMethodology, []string{"code review", "code reviews"}},
	{"Documentation", CategoryMethodology, []string{"documentation", "technical writing"}},
	{"Open Source", CategoryMethodology, []string{"open source", "open-source"}},
}

// SkillExtractor tags free text with canonical skill names. Deterministic,
// no I/O.
type SkillExtractor struct{}

func NewSkillExtractor() *SkillExtractor {
	return &SkillExtractor{}
}

// Extract returns the sorted unique skills found in text, grouped by
// category, with a confidence label driven purely by how many were found.
func (s *SkillExtractor) Extract(text string) *SkillExtraction {
	haystack := " " + tokenizeForMatch(text) + " "

	var skills []string
	categories := make(map[string][]string)

	for _, entry := range skillDictionary {
		for _, syn := range entry.synonyms {
			if strings.Contains(haystack, " "+syn+" ") {
				skills = append(skills, entry.name)
				categories[entry.category] = append(categories[entry.category], entry.name)
				break
			}
		}
	}

	sort.Strings(skills)
	for _, names := range categories {
		sort.Strings(names)
	}
	if skills == nil {
		skills = []string{}
	}

	return &SkillExtraction{
		Skills:          skills,
		SkillCategories: categories,
		Confidence:      confidenceForCount(len(skills)),
	}
}

func confidenceForCount(n int) string {
	switch {
	case n >= 10:
		return "high"
	case n >= 5:
		return "medium"
	default:
		return "low"
	}
}

// tokenizeForMatch lowercases text and replaces punctuation with spaces while
// keeping + # . / - inside words, so "c++", "node.js" and "ci/cd" survive as
// single tokens and synonym lookups stay word-bounded.
func tokenizeForMatch(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' || r == '#' || r == '.' || r == '/' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.TrimRight(w, ".")
	}
	return strings.Join(words, " ")
}
