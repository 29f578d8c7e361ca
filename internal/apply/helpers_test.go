package apply

import (
	"context"

	"go-applyninja-automation/internal/models"
	"go-applyninja-automation/internal/store"
)

// fakeOracle scripts AI replies and records every question it was asked.
type fakeOracle struct {
	answers []string
	choices []string
	err     error

	questions   []string
	priorErrors []string
	choiceAsked []string
}

func (f *fakeOracle) ExtractProfile(ctx context.Context, resumeText string) (*models.CandidateProfile, error) {
	return nil, f.err
}

func (f *fakeOracle) AnswerQuestion(ctx context.Context, question string, profile *models.CandidateProfile, priorError string) (string, error) {
	f.questions = append(f.questions, question)
	f.priorErrors = append(f.priorErrors, priorError)
	if f.err != nil {
		return "", f.err
	}
	if len(f.answers) == 0 {
		return "", nil
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakeOracle) ChooseOption(ctx context.Context, question string, options []string, profile *models.CandidateProfile) (string, error) {
	f.choiceAsked = append(f.choiceAsked, question)
	if f.err != nil {
		return "", f.err
	}
	if len(f.choices) == 0 {
		return "", nil
	}
	choice := f.choices[0]
	f.choices = f.choices[1:]
	return choice, nil
}

// memStore is an in-memory store.Store for engine tests.
type memStore struct {
	profile *models.CandidateProfile
	history []models.ApplicationRecord
	stop    bool
	saves   int
}

func newMemStore(p *models.CandidateProfile) *memStore {
	return &memStore{profile: p}
}

func (m *memStore) LoadProfile() (*models.CandidateProfile, error) {
	if m.profile == nil {
		return nil, store.ErrNoProfile
	}
	return m.profile, nil
}

func (m *memStore) SaveProfile(p *models.CandidateProfile) error {
	m.profile = p
	m.saves++
	return nil
}

func (m *memStore) History() ([]models.ApplicationRecord, error) {
	return m.history, nil
}

func (m *memStore) AppendHistory(rec models.ApplicationRecord) error {
	m.history = append([]models.ApplicationRecord{rec}, m.history...)
	return nil
}

func (m *memStore) ClearHistory() error {
	m.history = nil
	return nil
}

func (m *memStore) RequestStop() error {
	m.stop = true
	return nil
}

func (m *memStore) ClearStop() error {
	m.stop = false
	return nil
}

func (m *memStore) StopRequested() bool {
	return m.stop
}

func testSelectors() Selectors {
	return Selectors{
		JobCard:     ".card",
		CardTitle:   ".title",
		ApplyButton: ".apply",

		FileInput: "input-file",
		TextInput: "input-text",
		Select:    "select-box",
		Fieldset:  "fieldset",
		Radio:     "radio",
		Legend:    "legend",
		GroupItem: "item",
		Checkbox:  "checkbox",

		SubmitButton:  ".submit",
		NextButtons:   []string{".next", ".review"},
		DismissButton: ".dismiss",

		Parent:       "parent",
		ErrorMessage: ".error",
	}
}

// testPolicy zeroes every delay so tests run instantly.
func testPolicy() Policy {
	p := DefaultPolicy()
	p.SettleMinMs = 0
	p.SettleMaxMs = 0
	p.PacingMinMs = 0
	p.PacingMaxMs = 0
	return p
}

type noopLog struct{}

func (noopLog) Logf(format string, args ...any) {}
