// The demo portal is a bundled single-page application form used to show
// the pipeline end to end without touching a live site.

package demo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-applyninja-automation/internal/apply"
	"go-applyninja-automation/internal/browser"
	"go-applyninja-automation/internal/config"
	"go-applyninja-automation/internal/driver"
	"go-applyninja-automation/internal/logger"
	"go-applyninja-automation/internal/models"
	"go-applyninja-automation/internal/store"
)

// Run fills and submits the TechCorp demo application form.
func Run(cfg *config.Config, st store.Store, stream *logger.Stream) error {
	stream.Logf("🚀 Auto-Apply Bot: Starting execution...")

	profile, err := st.LoadProfile()
	if err != nil {
		return fmt.Errorf("no user data found, please upload a resume first: %w", err)
	}

	resumePath, _ := filepath.Abs(cfg.ResumePath)
	if _, err := os.Stat(resumePath); err != nil {
		return fmt.Errorf("resume file not found at %s", resumePath)
	}

	stream.Logf("🤖 Bot initializing...")
	stream.Logf("   Candidate: %s", profile.Name)
	stream.Logf("   Target: TechCorp Demo Portal")

	pm, err := browser.NewPlaywright(cfg.Headless)
	if err != nil {
		return fmt.Errorf("%w: %v", apply.ErrDriverInit, err)
	}
	defer pm.Close()

	bctx, err := pm.NewContext(nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apply.ErrDriverInit, err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		return fmt.Errorf("%w: %v", apply.ErrDriverInit, err)
	}
	drv := driver.NewPageDriver(page)

	pagePath, _ := filepath.Abs(cfg.DemoPagePath)
	if err := drv.Navigate("file://" + pagePath); err != nil {
		return fmt.Errorf("could not open demo page: %w", err)
	}
	browser.RandomDelay(800, 1200)

	stream.Logf("📝 Filling application form...")
	fields := []struct {
		selector string
		value    string
	}{
		{"#fullname", profile.Name},
		{"#email", profile.Email},
		{"#phone", profile.Phone},
		{"#cover_letter", profile.Summary},
	}
	for _, f := range fields {
		el, err := drv.WaitFor(f.selector, 5*time.Second)
		if err != nil {
			return fmt.Errorf("demo form field %s missing: %w", f.selector, err)
		}
		if err := el.Fill(f.value); err != nil {
			return fmt.Errorf("could not fill %s: %w", f.selector, err)
		}
	}

	upload, err := drv.WaitFor("#resume", 5*time.Second)
	if err != nil {
		return fmt.Errorf("resume upload field missing: %w", err)
	}
	if err := upload.SetInputFiles(resumePath); err != nil {
		return fmt.Errorf("could not attach resume: %w", err)
	}

	stream.Logf("🚀 Submitting application...")
	submit, err := drv.WaitFor("button", 5*time.Second)
	if err != nil {
		return fmt.Errorf("submit button missing: %w", err)
	}
	if err := submit.Click(); err != nil {
		return fmt.Errorf("could not submit: %w", err)
	}
	browser.RandomDelay(2000, 3000)
	stream.Logf("✅ Application successful!")

	//bring the confirmation into view for the screenshot
	if _, err := drv.Eval("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
		stream.Logf("⚠️ Could not scroll to confirmation: %v", err)
	}

	shotPath := filepath.Join(cfg.DataDir, "application_success.png")
	if err := drv.Screenshot(shotPath); err != nil {
		stream.Logf("⚠️ Could not capture screenshot: %v", err)
	} else {
		stream.Logf("📸 Screenshot saved to: %s", shotPath)
	}

	role := profile.JobRole
	if role == "" {
		role = "Senior Engineer"
	}
	if err := st.AppendHistory(models.NewApplicationRecord("TechCorp", role, models.StatusApplied)); err != nil {
		stream.Logf("⚠️ Could not save history record: %v", err)
	}
	return nil
}
