package apply

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-applyninja-automation/internal/driver"
	"go-applyninja-automation/internal/models"
)

func newTestModal(drv *driver.StubDriver, oracle *fakeOracle, st *memStore, profile *models.CandidateProfile, resume string) *Modal {
	return NewModal(ModalParams{
		Driver:     drv,
		Resolver:   NewResolver(oracle, profile),
		Store:      st,
		Profile:    profile,
		Selectors:  testSelectors(),
		Policy:     testPolicy(),
		ResumePath: resume,
		Log:        noopLog{},
	})
}

// openableJob registers a job card and an apply button and returns the card.
func openableJob(drv *driver.StubDriver) *driver.StubElement {
	sel := testSelectors()
	card := driver.NewStubElement()
	drv.Set(sel.JobCard, card)
	drv.Set(sel.ApplyButton, driver.NewStubElement())
	return card
}

func TestModalSubmitsOnFirstStep(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)

	submit := driver.NewStubElement()
	drv.Set(sel.SubmitButton, submit)

	profile := &models.CandidateProfile{IsPremium: true}
	st := newMemStore(profile)
	m := newTestModal(drv, &fakeOracle{}, st, profile, "")

	outcome, err := m.Run(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSubmitted, outcome)
	assert.Equal(t, 1, submit.Clicks)

	//no step was advanced, so the counter must not move
	assert.Equal(t, 0, profile.ApplicationCount)
	assert.Equal(t, 0, st.saves)
}

func TestModalCountsEachAdvancedStep(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)

	next := driver.NewStubElement()
	drv.Set(sel.NextButtons[0], next)

	profile := &models.CandidateProfile{IsPremium: true}
	st := newMemStore(profile)
	m := newTestModal(drv, &fakeOracle{}, st, profile, "")

	outcome, err := m.Run(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAbandoned, outcome)

	//the flow never reached submit, so the step bound kicked in
	assert.Equal(t, testPolicy().MaxModalSteps, next.Clicks)
	assert.Equal(t, testPolicy().MaxModalSteps, profile.ApplicationCount)
	//each increment was persisted immediately
	assert.Equal(t, testPolicy().MaxModalSteps, st.saves)
}

func TestModalStuckWithoutControls(t *testing.T) {
	drv := driver.NewStubDriver()
	card := openableJob(drv)

	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, &fakeOracle{}, newMemStore(profile), profile, "")

	outcome, err := m.Run(context.Background(), card)
	assert.Equal(t, OutcomeAbandoned, outcome)
	assert.ErrorIs(t, err, ErrModalStuck)
}

func TestModalReviewButtonAdvances(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)

	review := driver.NewStubElement()
	drv.Set(sel.NextButtons[1], review)
	review.OnClick = func() {
		drv.Set(sel.SubmitButton, driver.NewStubElement())
	}

	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, &fakeOracle{}, newMemStore(profile), profile, "")

	outcome, err := m.Run(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSubmitted, outcome)
	assert.Equal(t, 1, review.Clicks)
	assert.Equal(t, 1, profile.ApplicationCount)
}

func TestModalValidationRetry(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)
	drv.Set(sel.SubmitButton, driver.NewStubElement())

	label := driver.NewStubElement()
	label.Text = "Years of experience with Go"
	drv.Set("label[for='exp']", label)

	input := driver.NewStubElement()
	input.Attrs["id"] = "exp"
	input.Attrs["aria-invalid"] = "true"

	feedback := driver.NewStubElement()
	feedback.Text = "Enter a whole number"
	parent := driver.NewStubElement()
	parent.Children[sel.ErrorMessage] = []*driver.StubElement{feedback}
	input.Children[sel.Parent] = []*driver.StubElement{parent}

	drv.Set(sel.TextInput, input)

	oracle := &fakeOracle{answers: []string{"five years", "5"}}
	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, oracle, newMemStore(profile), profile, "")

	outcome, err := m.Run(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSubmitted, outcome)

	//exactly one retry, carrying the page's rejection message
	assert.Equal(t, []string{"five years", "5"}, input.Fills)
	assert.Equal(t, "5", input.Value)
	require.Len(t, oracle.priorErrors, 2)
	assert.Equal(t, "", oracle.priorErrors[0])
	assert.Equal(t, "Enter a whole number", oracle.priorErrors[1])
}

func TestModalLeavesPrefilledInputsAlone(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)
	drv.Set(sel.SubmitButton, driver.NewStubElement())

	label := driver.NewStubElement()
	label.Text = "Phone number"
	drv.Set("label[for='phone']", label)

	prefilled := driver.NewStubElement()
	prefilled.Attrs["id"] = "phone"
	prefilled.Value = "0901234567"

	unlabeled := driver.NewStubElement()

	drv.Set(sel.TextInput, prefilled, unlabeled)

	oracle := &fakeOracle{answers: []string{"should not be used"}}
	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, oracle, newMemStore(profile), profile, "")

	_, err := m.Run(context.Background(), card)
	require.NoError(t, err)

	assert.Empty(t, prefilled.Fills)
	assert.Equal(t, "0901234567", prefilled.Value)
	assert.Empty(t, unlabeled.Fills)
	assert.Empty(t, oracle.questions, "no unanswered labeled field, so no oracle call")
}

func TestModalAttachesResumeOnce(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)
	drv.Set(sel.SubmitButton, driver.NewStubElement())

	resume := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4"), 0644))

	empty := driver.NewStubElement()
	attached := driver.NewStubElement()
	attached.Value = "resume.pdf"
	drv.Set(sel.FileInput, empty, attached)

	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, &fakeOracle{}, newMemStore(profile), profile, resume)

	_, err := m.Run(context.Background(), card)
	require.NoError(t, err)

	assert.Equal(t, resume, empty.Files)
	assert.Equal(t, "", attached.Files, "already attached input stays untouched")
}

func TestModalFillsPlaceholderSelectOnly(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)
	drv.Set(sel.SubmitButton, driver.NewStubElement())

	label := driver.NewStubElement()
	label.Text = "English proficiency"
	drv.Set("label[for='english']", label)

	placeholder := driver.NewStubElement()
	placeholder.Attrs["id"] = "english"
	placeholder.Value = "Select an option"
	for _, text := range []string{"Select an option", "Professional", "Native"} {
		opt := driver.NewStubElement()
		opt.Text = text
		placeholder.Children["option"] = append(placeholder.Children["option"], opt)
	}

	label2 := driver.NewStubElement()
	label2.Text = "Visa status"
	drv.Set("label[for='visa']", label2)

	answered := driver.NewStubElement()
	answered.Attrs["id"] = "visa"
	answered.Value = "Citizen"
	opt := driver.NewStubElement()
	opt.Text = "Citizen"
	answered.Children["option"] = []*driver.StubElement{opt}

	drv.Set(sel.Select, placeholder, answered)

	oracle := &fakeOracle{choices: []string{"Professional"}}
	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, oracle, newMemStore(profile), profile, "")

	_, err := m.Run(context.Background(), card)
	require.NoError(t, err)

	assert.Equal(t, "Professional", placeholder.Selected)
	assert.Equal(t, "", answered.Selected, "a real selection is never overwritten")
	assert.Len(t, oracle.choiceAsked, 1)
}

func TestModalFillsUnansweredRadioGroup(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)
	drv.Set(sel.SubmitButton, driver.NewStubElement())

	fieldset := driver.NewStubElement()
	legend := driver.NewStubElement()
	legend.Text = "Do you have a work permit?"
	fieldset.Children[sel.Legend] = []*driver.StubElement{legend}
	fieldset.Children[sel.Radio] = []*driver.StubElement{driver.NewStubElement(), driver.NewStubElement()}

	yes := driver.NewStubElement()
	yes.Text = "Yes"
	no := driver.NewStubElement()
	no.Text = "No"
	fieldset.Children[sel.GroupItem] = []*driver.StubElement{yes, no}

	answeredSet := driver.NewStubElement()
	checkedRadio := driver.NewStubElement()
	checkedRadio.Checked = true
	answeredSet.Children[sel.Radio] = []*driver.StubElement{checkedRadio}
	answeredLegend := driver.NewStubElement()
	answeredLegend.Text = "Willing to relocate?"
	answeredSet.Children[sel.Legend] = []*driver.StubElement{answeredLegend}
	answeredItem := driver.NewStubElement()
	answeredItem.Text = "No"
	answeredSet.Children[sel.GroupItem] = []*driver.StubElement{answeredItem}

	drv.Set(sel.Fieldset, fieldset, answeredSet)

	oracle := &fakeOracle{choices: []string{"Yes"}}
	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, oracle, newMemStore(profile), profile, "")

	_, err := m.Run(context.Background(), card)
	require.NoError(t, err)

	assert.Equal(t, 1, yes.Clicks)
	assert.Equal(t, 0, no.Clicks)
	assert.Equal(t, 0, answeredItem.Clicks, "pre-selected group stays untouched")
	assert.Len(t, oracle.choiceAsked, 1)
}

func TestModalChecksBoxOnAffirmativeAnswer(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()
	card := openableJob(drv)
	drv.Set(sel.SubmitButton, driver.NewStubElement())

	label := driver.NewStubElement()
	label.Text = "I agree to the terms of service"
	drv.Set("label[for='terms']", label)

	box := driver.NewStubElement()
	box.Attrs["id"] = "terms"

	checkedLabel := driver.NewStubElement()
	checkedLabel.Text = "Subscribe to newsletter"
	drv.Set("label[for='news']", checkedLabel)

	already := driver.NewStubElement()
	already.Attrs["id"] = "news"
	already.Checked = true

	drv.Set(sel.Checkbox, box, already)

	oracle := &fakeOracle{answers: []string{"Yes"}}
	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, oracle, newMemStore(profile), profile, "")

	_, err := m.Run(context.Background(), card)
	require.NoError(t, err)

	assert.Equal(t, 1, box.Clicks)
	assert.Equal(t, 0, already.Clicks)
	require.Len(t, oracle.questions, 1)
	assert.Contains(t, oracle.questions[0], "I agree to the terms of service")
}

func TestModalHonorsCancelledContext(t *testing.T) {
	drv := driver.NewStubDriver()
	card := openableJob(drv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	profile := &models.CandidateProfile{IsPremium: true}
	m := newTestModal(drv, &fakeOracle{}, newMemStore(profile), profile, "")

	outcome, err := m.Run(ctx, card)
	assert.Equal(t, OutcomeAbandoned, outcome)
	assert.ErrorIs(t, err, context.Canceled)
}
