// Package keywords extracts known technical and soft-skill terms from job postings.
package keywords

import (
	"sort"
	"strings"

	"github.com/jonathan/application-tailor/internal/types"
)

// TechnicalTerms is the fixed vocabulary of technical terms. Entries are lowercase.
var TechnicalTerms = []string{
	"javascript", "typescript", "react", "angular", "vue", "svelte", "next.js", "node.js",
	"html", "css", "sass", "tailwind", "redux", "webpack", "vite",
	"java", "kotlin", "spring", "python", "django", "flask", "fastapi",
	"golang", "rust", "c++", "c#", ".net", "php", "laravel", "ruby", "rails", "swift", "flutter", "dart",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "firebase", "graphql", "rest api",
	"docker", "kubernetes", "terraform", "ansible", "aws", "azure", "gcp", "linux", "ci/cd", "jenkins",
	"github actions", "gitlab", "microservices", "kafka", "rabbitmq",
	"machine learning", "tensorflow", "pytorch", "pandas", "data analysis", "power bi", "tableau",
	"figma", "ux", "scrum", "kanban", "jira", "sap", "excel", "testing", "jest", "cypress", "selenium",
}

// SoftSkills is the fixed vocabulary of soft skills in English and German. Entries are lowercase.
var SoftSkills = []string{
	"teamwork", "team player", "communication", "leadership", "problem solving", "problem-solving",
	"collaboration", "adaptability", "time management", "critical thinking", "creativity",
	"attention to detail", "self-motivated", "customer focus", "mentoring", "ownership",
	"teamfähigkeit", "teamplayer", "kommunikationsfähigkeit", "kommunikationsstärke",
	"führungskompetenz", "problemlösung", "zuverlässigkeit", "selbstständig", "eigenverantwortlich",
	"kreativität", "flexibilität", "belastbarkeit", "organisationstalent", "kundenorientierung",
	"lernbereitschaft", "analytisch",
}

// Set is a deduplicated set of lowercase vocabulary terms.
type Set map[string]struct{}

// NewSet builds a set from terms, lower-casing each.
func NewSet(terms ...string) Set {
	s := make(Set, len(terms))
	for _, t := range terms {
		s[strings.ToLower(t)] = struct{}{}
	}
	return s
}

// Contains reports whether term is in the set, ignoring case.
func (s Set) Contains(term string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(term))]
	return ok
}

// Len returns the number of terms.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the terms in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Extract returns the vocabulary terms occurring in the job's title, company, notes and tech stack.
// A nil job yields an empty set.
func Extract(job *types.Job) Set {
	if job == nil {
		return Set{}
	}
	return ExtractText(job.SearchText())
}

// ExtractText matches both vocabularies against text by case-insensitive substring containment.
func ExtractText(text string) Set {
	result := Set{}
	if strings.TrimSpace(text) == "" {
		return result
	}
	lower := strings.ToLower(text)
	for _, vocab := range [][]string{TechnicalTerms, SoftSkills} {
		for _, term := range vocab {
			if strings.Contains(lower, term) {
				result[term] = struct{}{}
			}
		}
	}
	return result
}
