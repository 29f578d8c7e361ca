package linkedin

import (
	"fmt"
	"net/url"
	"time"

	"go-applyninja-automation/internal/apply"
	"go-applyninja-automation/internal/browser"
	"go-applyninja-automation/internal/driver"
)

const (
	loginURL        = "https://www.linkedin.com/login"
	// f_AL=true filters for Easy Apply, f_TPR=r86400 for the past 24 hours
	searchURLFormat = "https://www.linkedin.com/jobs/search/?keywords=%s&f_AL=true&f_TPR=r86400"

	usernameSelector = "#username"
	passwordSelector = "#password"
	loginSubmit      = "button[type='submit']"
	navSelector      = "#global-nav"
)

// Selectors returns the LinkedIn Easy Apply control set.
// These change often; standard as of late 2024.
func Selectors() apply.Selectors {
	return apply.Selectors{
		JobCard:     ".job-card-container",
		CardTitle:   "a.job-card-container__link",
		ApplyButton: ".jobs-apply-button--top-card",

		FileInput: "input[type='file']",
		TextInput: "input[type='text'], textarea, input[type='tel'], input[type='email'], input[type='number']",
		Select:    "select",
		Fieldset:  "fieldset",
		Radio:     "input[type='radio']",
		Legend:    "legend",
		GroupItem: "label",
		Checkbox:  "input[type='checkbox']",

		SubmitButton:  "button[aria-label='Submit application']",
		NextButtons:   []string{"button[aria-label='Continue to next step']", "button[aria-label='Review your application']"},
		DismissButton: "button[aria-label='Dismiss']",

		Parent:       "xpath=..",
		ErrorMessage: ".artdeco-inline-feedback__message",
	}
}

// Portal handles the navigation that happens before any modal opens:
// credential login and the Easy Apply job search.
type Portal struct {
	drv          driver.Driver
	log          apply.Logf
	loginTimeout time.Duration
}

func NewPortal(drv driver.Driver, log apply.Logf, loginTimeout time.Duration) *Portal {
	return &Portal{drv: drv, log: log, loginTimeout: loginTimeout}
}

// Login signs in with credentials. The long wait on the navbar gives the
// operator time to solve a captcha by hand; exceeding it is session-fatal.
func (p *Portal) Login(email, password string) error {
	p.log.Logf("🔑 Logging in...")
	if err := p.drv.Navigate(loginURL); err != nil {
		return fmt.Errorf("could not open login page: %w", err)
	}

	userInput, err := p.drv.WaitFor(usernameSelector, 10*time.Second)
	if err != nil {
		return fmt.Errorf("login form not found: %w", err)
	}
	if err := userInput.Fill(email); err != nil {
		return fmt.Errorf("could not enter email: %w", err)
	}
	browser.RandomDelay(800, 1500)

	passInput, err := p.drv.WaitFor(passwordSelector, 5*time.Second)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}
	if err := passInput.Fill(password); err != nil {
		return fmt.Errorf("could not enter password: %w", err)
	}
	browser.RandomDelay(800, 1500)

	submit, err := p.drv.WaitFor(loginSubmit, 5*time.Second)
	if err != nil {
		return fmt.Errorf("login button not found: %w", err)
	}
	if err := submit.Click(); err != nil {
		return fmt.Errorf("could not click login: %w", err)
	}

	p.log.Logf("⏳ Waiting for login... (Please solve Captcha manually if it appears)")
	if _, err := p.drv.WaitFor(navSelector, p.loginTimeout); err != nil {
		return fmt.Errorf("login verification failed - global nav not found: %w", err)
	}
	p.log.Logf("✅ Login Successful")
	return nil
}

// OpenSearch navigates to the Easy Apply search for the target role.
func (p *Portal) OpenSearch(jobRole string) error {
	searchURL := fmt.Sprintf(searchURLFormat, url.QueryEscape(jobRole))
	p.log.Logf("🔎 Searching: %s", searchURL)
	if err := p.drv.Navigate(searchURL); err != nil {
		return fmt.Errorf("could not open job search: %w", err)
	}
	return nil
}
