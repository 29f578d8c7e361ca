package linkedin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-applyninja-automation/internal/ai"
	"go-applyninja-automation/internal/apply"
	"go-applyninja-automation/internal/browser"
	"go-applyninja-automation/internal/config"
	"go-applyninja-automation/internal/dedup"
	"go-applyninja-automation/internal/driver"
	"go-applyninja-automation/internal/filter"
	"go-applyninja-automation/internal/logger"
	"go-applyninja-automation/internal/models"
	"go-applyninja-automation/internal/store"
)

// RunSession is the full LinkedIn pipeline: browser up, login, search,
// batch. One browser session is exclusively owned by one conductor until
// the batch ends.
func RunSession(ctx context.Context, cfg *config.Config, st store.Store, stream *logger.Stream, email, password string) (models.ApplicationRecord, error) {
	stream.Logf("🚀 LinkedIn Bot: Starting execution...")

	profile, err := st.LoadProfile()
	if err != nil {
		return models.ApplicationRecord{}, fmt.Errorf("no user data found, please upload a resume first: %w", err)
	}

	resumePath, _ := filepath.Abs(cfg.ResumePath)
	if _, err := os.Stat(resumePath); err != nil {
		stream.Logf("⚠️ Resume file not found. Upload logic will be skipped.")
		resumePath = ""
	}

	stream.Logf("🤖 LinkedIn Agent Initialized for: %s", email)
	stream.Logf("🎯 Target Role: %s", profile.JobRole)

	pm, err := browser.NewPlaywright(cfg.Headless)
	if err != nil {
		return models.ApplicationRecord{}, fmt.Errorf("%w: %v", apply.ErrDriverInit, err)
	}
	defer pm.Close()

	//reuse saved session cookies when available
	var cookies []playwright.OptionalCookie
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-linkedin.json")
	if loaded, err := browser.LoadCookies(cookieFile); err == nil {
		stream.Logf("🍪 Loaded %d saved cookies", len(loaded))
		cookies = loaded
	}

	bctx, err := pm.NewContext(cookies)
	if err != nil {
		return models.ApplicationRecord{}, fmt.Errorf("%w: %v", apply.ErrDriverInit, err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		return models.ApplicationRecord{}, fmt.Errorf("%w: %v", apply.ErrDriverInit, err)
	}

	drv := driver.NewPageDriver(page)
	portal := NewPortal(drv, stream, time.Duration(cfg.LoginTimeoutSec)*time.Second)
	if err := portal.Login(email, password); err != nil {
		shotPath := filepath.Join(cfg.DataDir, "login_failure.png")
		if shotErr := drv.Screenshot(shotPath); shotErr == nil {
			stream.Logf("📸 Login failure screenshot saved to: %s", shotPath)
		}
		return models.ApplicationRecord{}, err
	}

	//warm up like a human before hitting the search page
	browser.HumanScroll(page)
	browser.MouseJiggle(page)

	if err := portal.OpenSearch(profile.JobRole); err != nil {
		return models.ApplicationRecord{}, err
	}
	browser.RandomDelay(2000, 4000)

	oracle := ai.NewGrokClient(cfg.GroqAPIKey)
	conductor := apply.NewConductor(apply.ConductorParams{
		Driver:     drv,
		Resolver:   apply.NewResolver(oracle, profile),
		Store:      st,
		Profile:    profile,
		Selectors:  Selectors(),
		Policy:     policyFromConfig(cfg),
		ResumePath: resumePath,
		Log:        stream,
		Cache:      dedup.NewAppliedCache(filepath.Join(cfg.DataDir, "cache")),
		Matcher:    filter.NewRoleMatcher(profile.JobRole),
		Company:    "LinkedIn Network",
	})

	return conductor.RunBatch(ctx)
}

func policyFromConfig(cfg *config.Config) apply.Policy {
	p := apply.DefaultPolicy()
	p.MaxModalSteps = cfg.MaxModalSteps
	p.FreeQuota = cfg.FreeQuota
	p.PacingMinMs = cfg.PacingMinMs
	p.PacingMaxMs = cfg.PacingMaxMs
	return p
}
