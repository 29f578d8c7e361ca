package apply

import (
	"context"
	"log"
	"strings"

	"go-applyninja-automation/internal/ai"
	"go-applyninja-automation/internal/filter"
	"go-applyninja-automation/internal/models"
)

// Resolver turns form questions into answers via the AI oracle. Oracle
// failures degrade to empty strings, never into errors: an empty answer
// means "leave the field unanswered".
type Resolver struct {
	oracle  ai.Client
	profile *models.CandidateProfile
}

func NewResolver(oracle ai.Client, profile *models.CandidateProfile) *Resolver {
	return &Resolver{oracle: oracle, profile: profile}
}

// Text answers a free-text question. priorError carries the page's
// rejection message on the single retry after a validation failure.
func (r *Resolver) Text(ctx context.Context, question, priorError string) string {
	if strings.TrimSpace(question) == "" {
		return ""
	}

	answer, err := r.oracle.AnswerQuestion(ctx, question, r.profile, priorError)
	if err != nil {
		log.Printf("⚠️ Oracle failed on %q: %v", question, err)
		return ""
	}
	return strings.TrimSpace(answer)
}

// Choice answers a choice question and guarantees the result is a member of
// options, or empty. When the oracle's pick is not an exact option, the
// first option containing it as a normalized substring wins.
func (r *Resolver) Choice(ctx context.Context, question string, options []string) string {
	if strings.TrimSpace(question) == "" || len(options) == 0 {
		return ""
	}

	pick, err := r.oracle.ChooseOption(ctx, question, options, r.profile)
	if err != nil {
		log.Printf("⚠️ Oracle failed on choice %q: %v", question, err)
		return ""
	}

	pick = strings.TrimSpace(pick)
	if pick == "" {
		return ""
	}

	for _, opt := range options {
		if opt == pick {
			return opt
		}
	}

	//fuzzy fallback: first option containing the pick, diacritics ignored
	normalized := filter.Normalize(pick)
	for _, opt := range options {
		if strings.Contains(filter.Normalize(opt), normalized) {
			return opt
		}
	}
	return ""
}

// Affirmative interprets a yes/no oracle reply. ambiguousDefault decides
// what a reply that is neither yes nor no counts as.
func Affirmative(answer string, ambiguousDefault bool) bool {
	lower := strings.ToLower(answer)
	switch {
	case answer == "":
		return false
	case strings.Contains(lower, "yes"):
		return true
	case strings.Contains(lower, "no"):
		return false
	default:
		return ambiguousDefault
	}
}
