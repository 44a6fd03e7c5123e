// Package fields extracts structured sections (skills, experience,
// education, summary) from a CV's structured text using section-header
// regexes. Extraction is best-effort; a section that cannot be found
// yields empty values, never an error.
package fields

import (
	"regexp"
	"sort"
	"strings"
)

var (
	skillSections = []string{
		"skills", "skill highlights", "summary of skills", "competencies",
	}
	experienceSections = []string{
		"work history", "work experience", "experience",
		"professional experience", "professional history", "employment history",
	}
	summarySections = []string{
		"summary", "objective", "professional summary", "profile",
	}
	// Known section headers, used to find where the current section ends.
	allSections = append(append(append([]string{},
		skillSections...), experienceSections...),
		"education", "education and training", "educational background",
		"highlights", "core qualifications", "languages", "professional profile",
		"relevant experience", "affiliations", "certifications", "qualifications",
		"accomplishments", "additional information", "career overview",
		"interests", "personal information", "career focus", "publications",
		"computer skills", "volunteer work", "awards", "summary", "objective",
		"professional summary", "profile",
	)
)

var (
	skillsRe     = sectionRegexp(skillSections)
	experienceRe = sectionRegexp(experienceSections)
	summaryRe    = sectionRegexp(summarySections)

	skillSplitRe = regexp.MustCompile(`[,;\n•*-]`)

	educationRes = compileAll([]string{
		`university of [a-z ]+`,
		`[a-z ]+ university`,
		`[a-z ]+ college`,
		`college of [a-z ]+`,
		`[a-z ]* institute of [a-z ]+`,
		`[a-z ]+ institute`,
		`[a-z ]+ high school`,
		`bachelor of [a-z ]+`,
		`master of [a-z ]+`,
		`ph\.d\. in [a-z ]+`,
	})
)

// sectionRegexp builds a regex matching any of the given section headers
// on its own line, capturing the body up to the next known header or end
// of text.
func sectionRegexp(headers []string) *regexp.Regexp {
	quoted := make([]string, len(headers))
	for i, h := range headers {
		quoted[i] = regexp.QuoteMeta(h)
	}
	all := make([]string, len(allSections))
	for i, h := range allSections {
		all[i] = regexp.QuoteMeta(h)
	}
	expr := `(?is)\n(?:` + strings.Join(quoted, "|") + `)\n(.*?)(?:\n(?:` + strings.Join(all, "|") + `)\n|$)`
	return regexp.MustCompile(expr)
}

func compileAll(exprs []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(`(?i)` + e)
	}
	return res
}

// Sections holds the extracted CV sections.
type Sections struct {
	Skills     []string
	Experience []string
	Education  []string
	Summary    string
}

// Extract runs all section extractors over the structured text.
func Extract(text string) Sections {
	// Surrounding newlines let header patterns anchor at the edges.
	framed := "\n" + strings.ToLower(text) + "\n"
	return Sections{
		Skills:     extractSkills(framed),
		Experience: extractExperience(framed),
		Education:  extractEducation(framed),
		Summary:    extractSummary(framed),
	}
}

func extractSkills(text string) []string {
	m := skillsRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var skills []string
	for _, part := range skillSplitRe.Split(m[1], -1) {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func extractExperience(text string) []string {
	m := experienceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var entries []string
	for _, line := range strings.Split(m[1], "\n") {
		if l := strings.TrimSpace(line); l != "" {
			entries = append(entries, l)
		}
	}
	return entries
}

func extractEducation(text string) []string {
	seen := make(map[string]struct{})
	for _, re := range educationRes {
		for _, m := range re.FindAllString(text, -1) {
			if s := strings.TrimSpace(m); s != "" {
				seen[s] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	entries := make([]string, 0, len(seen))
	for s := range seen {
		entries = append(entries, s)
	}
	sort.Strings(entries)
	return entries
}

func extractSummary(text string) string {
	m := summaryRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}
