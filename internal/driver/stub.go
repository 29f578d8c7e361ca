package driver

import (
	"fmt"
	"time"
)

// StubDriver is a deterministic in-memory Driver used by tests. Selectors
// map straight to registered elements, no DOM involved.
type StubDriver struct {
	URL      string
	pages    map[string][]*StubElement
	EvalLog  []string
	ShotPath string
}

func NewStubDriver() *StubDriver {
	return &StubDriver{pages: make(map[string][]*StubElement)}
}

// Set replaces the elements registered under a selector.
func (d *StubDriver) Set(selector string, els ...*StubElement) {
	d.pages[selector] = els
}

// Add appends elements under a selector.
func (d *StubDriver) Add(selector string, els ...*StubElement) {
	d.pages[selector] = append(d.pages[selector], els...)
}

// Remove drops a selector entirely.
func (d *StubDriver) Remove(selector string) {
	delete(d.pages, selector)
}

func (d *StubDriver) Navigate(url string) error {
	d.URL = url
	return nil
}

func (d *StubDriver) FindAll(selector string) ([]Element, error) {
	els := d.pages[selector]
	out := make([]Element, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out, nil
}

func (d *StubDriver) WaitFor(selector string, timeout time.Duration) (Element, error) {
	if els := d.pages[selector]; len(els) > 0 {
		return els[0], nil
	}
	return nil, fmt.Errorf("timed out waiting for %q", selector)
}

func (d *StubDriver) Eval(script string, args ...any) (any, error) {
	d.EvalLog = append(d.EvalLog, script)
	return nil, nil
}

func (d *StubDriver) Screenshot(path string) error {
	d.ShotPath = path
	return nil
}

// StubElement implements Element with plain fields so tests can script and
// inspect interactions directly.
type StubElement struct {
	Text     string
	Attrs    map[string]string
	Visible  bool
	Checked  bool
	Value    string
	Selected string
	Files    string
	Clicks   int
	Fills    []string
	FillErr  error
	OnClick  func()
	Children map[string][]*StubElement
}

func NewStubElement() *StubElement {
	return &StubElement{
		Visible:  true,
		Attrs:    make(map[string]string),
		Children: make(map[string][]*StubElement),
	}
}

func (e *StubElement) Click() error {
	e.Clicks++
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

func (e *StubElement) JSClick() error {
	return e.Click()
}

func (e *StubElement) Fill(text string) error {
	if e.FillErr != nil {
		return e.FillErr
	}
	e.Value = text
	e.Fills = append(e.Fills, text)
	return nil
}

func (e *StubElement) Clear() error {
	e.Value = ""
	return nil
}

func (e *StubElement) Press(key string) error {
	return nil
}

func (e *StubElement) SetInputFiles(path string) error {
	e.Files = path
	return nil
}

func (e *StubElement) SelectByLabel(label string) error {
	e.Selected = label
	e.Value = label
	return nil
}

func (e *StubElement) GetAttribute(name string) (string, error) {
	return e.Attrs[name], nil
}

func (e *StubElement) InputValue() (string, error) {
	return e.Value, nil
}

func (e *StubElement) InnerText() (string, error) {
	return e.Text, nil
}

func (e *StubElement) IsVisible() (bool, error) {
	return e.Visible, nil
}

func (e *StubElement) IsChecked() (bool, error) {
	return e.Checked, nil
}

func (e *StubElement) FindAll(selector string) ([]Element, error) {
	els := e.Children[selector]
	out := make([]Element, len(els))
	for i, c := range els {
		out[i] = c
	}
	return out, nil
}
