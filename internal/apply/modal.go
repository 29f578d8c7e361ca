package apply

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go-applyninja-automation/internal/browser"
	"go-applyninja-automation/internal/driver"
	"go-applyninja-automation/internal/filter"
	"go-applyninja-automation/internal/models"
	"go-applyninja-automation/internal/store"
)

type Outcome string

const (
	OutcomeSubmitted Outcome = "Submitted"
	OutcomeAbandoned Outcome = "Abandoned"
)

// Modal runs the multi-step application flow for a single job card: open,
// fill the visible fields, submit or advance, bounded by MaxModalSteps.
type Modal struct {
	drv        driver.Driver
	cls        *Classifier
	res        *Resolver
	store      store.Store
	profile    *models.CandidateProfile
	sel        Selectors
	policy     Policy
	resumePath string
	log        Logf
}

type ModalParams struct {
	Driver     driver.Driver
	Resolver   *Resolver
	Store      store.Store
	Profile    *models.CandidateProfile
	Selectors  Selectors
	Policy     Policy
	ResumePath string
	Log        Logf
}

func NewModal(p ModalParams) *Modal {
	return &Modal{
		drv:        p.Driver,
		cls:        NewClassifier(p.Driver, p.Selectors),
		res:        p.Resolver,
		store:      p.Store,
		profile:    p.Profile,
		sel:        p.Selectors,
		policy:     p.Policy,
		resumePath: p.ResumePath,
		log:        p.Log,
	}
}

// Run opens the application flow for one job card and drives it to a
// terminal outcome. Errors describe why a job was abandoned; they never
// abort the batch.
func (m *Modal) Run(ctx context.Context, card driver.Element) (Outcome, error) {
	if err := card.Click(); err != nil {
		return OutcomeAbandoned, fmt.Errorf("could not open job card: %w", err)
	}
	m.settle()

	applyBtn, err := m.drv.WaitFor(m.sel.ApplyButton, 10*time.Second)
	if err != nil {
		return OutcomeAbandoned, fmt.Errorf("apply control not found: %w", err)
	}
	if err := applyBtn.Click(); err != nil {
		return OutcomeAbandoned, fmt.Errorf("could not open application modal: %w", err)
	}
	m.log.Logf("      Clicked Easy Apply")
	m.settle()

	for step := 0; step < m.policy.MaxModalSteps; step++ {
		if err := ctx.Err(); err != nil {
			return OutcomeAbandoned, err
		}

		m.fillStep(ctx)

		//submit ends the flow
		if submit := m.visibleFirst(m.sel.SubmitButton); submit != nil {
			m.log.Logf("      🚀 Submit button found! Applying...")
			if err := submit.JSClick(); err != nil {
				return OutcomeAbandoned, fmt.Errorf("submit click failed: %w", err)
			}
			m.settle()
			m.dismissConfirmation()
			m.log.Logf("      ✅ Application Sent!")
			return OutcomeSubmitted, nil
		}

		advance := m.findAdvance()
		if advance == nil {
			return OutcomeAbandoned, ErrModalStuck
		}
		if err := advance.JSClick(); err != nil {
			return OutcomeAbandoned, fmt.Errorf("advance click failed: %w", err)
		}

		//each advanced step counts against the quota and must survive a crash
		m.profile.ApplicationCount++
		if err := m.store.SaveProfile(m.profile); err != nil {
			m.log.Logf("⚠️ Could not persist application count: %v", err)
		}
		m.settle()
	}

	m.log.Logf("      ⚠️ Step limit reached, abandoning modal")
	return OutcomeAbandoned, nil
}

// fillStep processes the currently visible field set in a fixed order. The
// set is re-queried every visit; the page mutates between steps.
func (m *Modal) fillStep(ctx context.Context) {
	m.attachResume()
	m.fillTextInputs(ctx)
	m.fillSelects(ctx)
	m.fillRadioGroups(ctx)
	m.fillCheckboxes(ctx)
}

func (m *Modal) attachResume() {
	if m.resumePath == "" {
		return
	}
	if _, err := os.Stat(m.resumePath); err != nil {
		return
	}

	inputs, err := m.drv.FindAll(m.sel.FileInput)
	if err != nil {
		return
	}
	for _, inp := range inputs {
		if val, _ := inp.InputValue(); val != "" {
			continue //already attached
		}
		if err := inp.SetInputFiles(m.resumePath); err != nil {
			continue
		}
		m.log.Logf("      📂 Resume uploaded")
	}
}

func (m *Modal) fillTextInputs(ctx context.Context) {
	inputs, err := m.drv.FindAll(m.sel.TextInput)
	if err != nil {
		return
	}

	for _, inp := range inputs {
		if visible, _ := inp.IsVisible(); !visible {
			continue
		}
		field := m.cls.TextField(inp)
		if field.Answered || field.Label == "" {
			continue
		}

		answer := m.res.Text(ctx, field.Label, "")
		if answer == "" {
			continue
		}
		if err := inp.Fill(answer); err != nil {
			continue
		}
		inp.Press("Tab") //advance focus so the page validates
		m.settle()

		//exactly one retry; a second rejection is accepted as-is
		if invalid, msg := m.cls.validationError(inp); invalid {
			m.log.Logf("      ⚠️ Validation Error: '%s'. Retrying with AI...", msg)
			corrected := m.res.Text(ctx, field.Label, msg)
			if corrected == "" {
				continue
			}
			if err := inp.Clear(); err != nil {
				continue
			}
			if err := inp.Fill(corrected); err != nil {
				continue
			}
			inp.Press("Tab")
			m.settle()
		}
	}
}

func (m *Modal) fillSelects(ctx context.Context) {
	selects, err := m.drv.FindAll(m.sel.Select)
	if err != nil {
		return
	}

	for _, sel := range selects {
		if visible, _ := sel.IsVisible(); !visible {
			continue
		}
		field := m.cls.SelectField(sel)
		if field.Label == "" || len(field.Options) == 0 {
			continue
		}
		//a real selection stays untouched; placeholder entries don't count
		if field.Value != "" && !strings.Contains(filter.Normalize(field.Value), "select") {
			continue
		}

		choice := m.res.Choice(ctx, field.Label, field.Options)
		if choice == "" {
			continue
		}
		if err := sel.SelectByLabel(choice); err != nil {
			continue
		}
		m.settle()
	}
}

func (m *Modal) fillRadioGroups(ctx context.Context) {
	fieldsets, err := m.drv.FindAll(m.sel.Fieldset)
	if err != nil {
		return
	}

	for _, fs := range fieldsets {
		field := m.cls.RadioGroup(fs)
		if m.policy.SkipAnsweredGroups && field.Answered {
			continue
		}
		if field.Label == "" || len(field.Options) == 0 {
			continue
		}

		choice := m.res.Choice(ctx, field.Label, field.Options)
		option, ok := field.optionEls[choice]
		if !ok {
			continue
		}
		if err := option.JSClick(); err != nil {
			continue
		}
		m.settle()
	}
}

func (m *Modal) fillCheckboxes(ctx context.Context) {
	boxes, err := m.drv.FindAll(m.sel.Checkbox)
	if err != nil {
		return
	}

	for _, box := range boxes {
		if visible, _ := box.IsVisible(); !visible {
			continue
		}
		field := m.cls.CheckboxField(box)
		if field.Answered || field.Label == "" {
			continue
		}

		question := fmt.Sprintf("Should I check the box for: '%s'? Answer Yes or No.", field.Label)
		answer := m.res.Text(ctx, question, "")
		if !Affirmative(answer, m.policy.CheckboxAffirmative) {
			continue
		}
		if err := box.JSClick(); err != nil {
			continue
		}
		m.settle()
	}
}

// visibleFirst returns the first visible element matching selector, or nil.
func (m *Modal) visibleFirst(selector string) driver.Element {
	els, err := m.drv.FindAll(selector)
	if err != nil {
		return nil
	}
	for _, el := range els {
		if visible, _ := el.IsVisible(); visible {
			return el
		}
	}
	return nil
}

func (m *Modal) findAdvance() driver.Element {
	for _, selector := range m.sel.NextButtons {
		if el := m.visibleFirst(selector); el != nil {
			return el
		}
	}
	return nil
}

func (m *Modal) dismissConfirmation() {
	if el := m.visibleFirst(m.sel.DismissButton); el != nil {
		el.JSClick()
	}
}

func (m *Modal) settle() {
	browser.RandomDelay(m.policy.SettleMinMs, m.policy.SettleMaxMs)
}
