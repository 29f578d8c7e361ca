package filter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var tokenSplit = regexp.MustCompile(`[^a-z0-9+#]+`)

// stop words that carry no signal when matching a title against a role
var noiseWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "of": true,
	"senior": true, "junior": true, "lead": true, "staff": true,
}

// Normalize strips diacritics and lowercases, so "Kỹ sư" and "ky su"
// compare equal. Same transform chain the scrapers used for Vietnamese
// job boards, kept because portal option labels are just as messy.
func Normalize(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// RoleMatcher decides whether a job card title is close enough to the
// candidate's target role to be worth an application attempt.
type RoleMatcher struct {
	tokens []string
}

func NewRoleMatcher(targetRole string) *RoleMatcher {
	var tokens []string
	for _, tok := range tokenSplit.Split(Normalize(targetRole), -1) {
		if len(tok) < 2 || noiseWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return &RoleMatcher{tokens: tokens}
}

// Matches is permissive: one shared token is enough, and an empty title or
// an empty role never blocks an attempt.
func (m *RoleMatcher) Matches(title string) bool {
	if len(m.tokens) == 0 || strings.TrimSpace(title) == "" {
		return true
	}

	normalized := Normalize(title)
	for _, tok := range m.tokens {
		if strings.Contains(normalized, tok) {
			return true
		}
	}
	return false
}
