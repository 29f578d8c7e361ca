package driver

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PageDriver adapts a playwright page to the Driver capability set.
type PageDriver struct {
	page playwright.Page
}

func NewPageDriver(page playwright.Page) *PageDriver {
	return &PageDriver{page: page}
}

func (pd *PageDriver) Navigate(url string) error {
	_, err := pd.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (pd *PageDriver) FindAll(selector string) ([]Element, error) {
	locs, err := pd.page.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", selector, err)
	}
	return wrapLocators(locs), nil
}

func (pd *PageDriver) WaitFor(selector string, timeout time.Duration) (Element, error) {
	loc := pd.page.Locator(selector).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("timed out waiting for %q: %w", selector, err)
	}
	return &pageElement{loc: loc}, nil
}

func (pd *PageDriver) Eval(script string, args ...any) (any, error) {
	return pd.page.Evaluate(script, args...)
}

func (pd *PageDriver) Screenshot(path string) error {
	_, err := pd.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func wrapLocators(locs []playwright.Locator) []Element {
	els := make([]Element, len(locs))
	for i, loc := range locs {
		els[i] = &pageElement{loc: loc}
	}
	return els
}

type pageElement struct {
	loc playwright.Locator
}

func (e *pageElement) Click() error {
	return e.loc.Click()
}

func (e *pageElement) JSClick() error {
	_, err := e.loc.Evaluate("el => el.click()", nil)
	return err
}

func (e *pageElement) Fill(text string) error {
	return e.loc.Fill(text)
}

func (e *pageElement) Clear() error {
	return e.loc.Clear()
}

func (e *pageElement) Press(key string) error {
	return e.loc.Press(key)
}

func (e *pageElement) SetInputFiles(path string) error {
	return e.loc.SetInputFiles(path)
}

func (e *pageElement) SelectByLabel(label string) error {
	_, err := e.loc.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	return err
}

func (e *pageElement) GetAttribute(name string) (string, error) {
	return e.loc.GetAttribute(name)
}

func (e *pageElement) InputValue() (string, error) {
	return e.loc.InputValue()
}

func (e *pageElement) InnerText() (string, error) {
	return e.loc.InnerText()
}

func (e *pageElement) IsVisible() (bool, error) {
	return e.loc.IsVisible()
}

func (e *pageElement) IsChecked() (bool, error) {
	return e.loc.IsChecked()
}

func (e *pageElement) FindAll(selector string) ([]Element, error) {
	locs, err := e.loc.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", selector, err)
	}
	return wrapLocators(locs), nil
}
