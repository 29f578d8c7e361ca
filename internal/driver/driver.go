package driver

import "time"

// Element is a handle to one DOM node on the current page. Handles are only
// valid for the page render they came from; callers re-query after any
// navigation or modal step change.
type Element interface {
	Click() error
	// JSClick clicks through script evaluation. Custom portal widgets (styled
	// radios, overlaid submit buttons) often swallow native clicks.
	JSClick() error
	Fill(text string) error
	Clear() error
	Press(key string) error
	SetInputFiles(path string) error
	SelectByLabel(label string) error
	GetAttribute(name string) (string, error)
	InputValue() (string, error)
	InnerText() (string, error)
	IsVisible() (bool, error)
	IsChecked() (bool, error)
	FindAll(selector string) ([]Element, error)
}

// Driver is the minimal browser capability the apply engine consumes. The
// real implementation wraps a playwright page; tests use the stub.
type Driver interface {
	Navigate(url string) error
	FindAll(selector string) ([]Element, error)
	WaitFor(selector string, timeout time.Duration) (Element, error)
	Eval(script string, args ...any) (any, error)
	Screenshot(path string) error
}
