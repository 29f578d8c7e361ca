package apply

import (
	"fmt"

	"go-applyninja-automation/internal/driver"
)

type FieldKind string

const (
	KindFileUpload FieldKind = "file-upload"
	KindFreeText   FieldKind = "free-text"
	KindSelect     FieldKind = "select-choice"
	KindRadioGroup FieldKind = "radio-choice"
	KindCheckbox   FieldKind = "checkbox"
)

// FormField is one classified control. Fields are recomputed on every modal
// step because the page mutates underneath; nothing here is cached.
type FormField struct {
	Kind     FieldKind
	Label    string
	Value    string
	Options  []string
	Answered bool

	el driver.Element
	// optionEls maps a radio option label to its clickable element
	optionEls map[string]driver.Element
}

// Classifier inspects visible controls and their labels. Pure inspection,
// no side effects on the page.
type Classifier struct {
	drv driver.Driver
	sel Selectors
}

func NewClassifier(drv driver.Driver, sel Selectors) *Classifier {
	return &Classifier{drv: drv, sel: sel}
}

// labelFor resolves the text of the label element declaring for=<id>.
// Controls without an id or without a label come back empty; the filler
// skips those because the oracle has no question to answer.
func (c *Classifier) labelFor(el driver.Element) string {
	id, err := el.GetAttribute("id")
	if err != nil || id == "" {
		return ""
	}

	labels, err := c.drv.FindAll(fmt.Sprintf("label[for='%s']", id))
	if err != nil || len(labels) == 0 {
		return ""
	}

	text, err := labels[0].InnerText()
	if err != nil {
		return ""
	}
	return text
}

// TextField classifies a text-like input: label via for=id, current value
// from the input itself.
func (c *Classifier) TextField(el driver.Element) FormField {
	value, _ := el.InputValue()
	return FormField{
		Kind:     KindFreeText,
		Label:    c.labelFor(el),
		Value:    value,
		Answered: value != "",
		el:       el,
	}
}

// SelectField classifies a dropdown with its option texts.
func (c *Classifier) SelectField(el driver.Element) FormField {
	field := FormField{
		Kind:  KindSelect,
		Label: c.labelFor(el),
		el:    el,
	}

	value, _ := el.InputValue()
	field.Value = value

	opts, err := el.FindAll("option")
	if err != nil {
		return field
	}
	for _, opt := range opts {
		text, err := opt.InnerText()
		if err != nil || text == "" {
			continue
		}
		field.Options = append(field.Options, text)
	}
	return field
}

// RadioGroup classifies a fieldset as one question: the legend text plus the
// distinct option labels. A group with any selected option is reported as
// already answered.
func (c *Classifier) RadioGroup(fieldset driver.Element) FormField {
	field := FormField{
		Kind:      KindRadioGroup,
		optionEls: make(map[string]driver.Element),
	}

	radios, err := fieldset.FindAll(c.sel.Radio)
	if err != nil {
		return field
	}
	for _, r := range radios {
		if checked, _ := r.IsChecked(); checked {
			field.Answered = true
			break
		}
	}

	if legends, err := fieldset.FindAll(c.sel.Legend); err == nil && len(legends) > 0 {
		field.Label, _ = legends[0].InnerText()
	}

	labels, err := fieldset.FindAll(c.sel.GroupItem)
	if err != nil {
		return field
	}
	for _, l := range labels {
		text, err := l.InnerText()
		if err != nil || text == "" {
			continue
		}
		if _, dup := field.optionEls[text]; dup {
			continue
		}
		field.Options = append(field.Options, text)
		field.optionEls[text] = l
	}
	return field
}

// CheckboxField classifies a single checkbox; checked means answered.
func (c *Classifier) CheckboxField(el driver.Element) FormField {
	checked, _ := el.IsChecked()
	return FormField{
		Kind:     KindCheckbox,
		Label:    c.labelFor(el),
		Answered: checked,
		el:       el,
	}
}

// validationError inspects a just-filled input. It returns whether the page
// rejected the value, and the rejection message ("Invalid format" when the
// portal renders none).
func (c *Classifier) validationError(el driver.Element) (bool, string) {
	invalid, err := el.GetAttribute("aria-invalid")
	if err != nil || invalid != "true" {
		return false, ""
	}

	msg := "Invalid format"
	parents, err := el.FindAll(c.sel.Parent)
	if err == nil && len(parents) > 0 {
		if feedback, err := parents[0].FindAll(c.sel.ErrorMessage); err == nil && len(feedback) > 0 {
			if text, err := feedback[0].InnerText(); err == nil && text != "" {
				msg = text
			}
		}
	}
	return true, msg
}
