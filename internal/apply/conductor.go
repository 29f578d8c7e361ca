package apply

import (
	"context"
	"fmt"
	"strings"

	"go-applyninja-automation/internal/browser"
	"go-applyninja-automation/internal/dedup"
	"go-applyninja-automation/internal/driver"
	"go-applyninja-automation/internal/filter"
	"go-applyninja-automation/internal/models"
	"go-applyninja-automation/internal/store"
)

// Conductor owns one batch: it walks the job list top to bottom, applies the
// quota guard and the stop sentinel before every job, runs the modal per
// job, paces between attempts and writes the batch history record.
type Conductor struct {
	drv        driver.Driver
	res        *Resolver
	store      store.Store
	profile    *models.CandidateProfile
	sel        Selectors
	policy     Policy
	resumePath string
	log        Logf
	cache      *dedup.AppliedCache
	matcher    *filter.RoleMatcher
	company    string
}

type ConductorParams struct {
	Driver     driver.Driver
	Resolver   *Resolver
	Store      store.Store
	Profile    *models.CandidateProfile
	Selectors  Selectors
	Policy     Policy
	ResumePath string
	Log        Logf
	// Cache and Matcher are optional prefilters.
	Cache   *dedup.AppliedCache
	Matcher *filter.RoleMatcher
	// Company labels the batch history record.
	Company string
}

func NewConductor(p ConductorParams) *Conductor {
	return &Conductor{
		drv:        p.Driver,
		res:        p.Resolver,
		store:      p.Store,
		profile:    p.Profile,
		sel:        p.Selectors,
		policy:     p.Policy,
		resumePath: p.ResumePath,
		log:        p.Log,
		cache:      p.Cache,
		matcher:    p.Matcher,
		company:    p.Company,
	}
}

// CheckQuota enforces the free-tier cap before a job attempt starts. The
// returned error wraps ErrQuotaExceeded so the caller can surface a
// payment-required response instead of a generic failure.
func (c *Conductor) CheckQuota() error {
	if !c.profile.IsPremium && c.profile.ApplicationCount >= c.policy.FreeQuota {
		return fmt.Errorf("free tier cap reached at %d applications: %w", c.profile.ApplicationCount, ErrQuotaExceeded)
	}
	return nil
}

// RunBatch processes every job card on the current page. Per-job failures
// are logged and skipped; only a quota violation is returned as an error.
// One batch-level history record is written however the loop ends.
func (c *Conductor) RunBatch(ctx context.Context) (models.ApplicationRecord, error) {
	//a stale stop request must not cancel the fresh session
	if err := c.store.ClearStop(); err != nil {
		c.log.Logf("⚠️ Could not clear stop sentinel: %v", err)
	}

	cards, err := c.drv.FindAll(c.sel.JobCard)
	if err != nil {
		c.log.Logf("⚠️ Could not list job cards: %v", err)
	}
	if len(cards) == 0 {
		c.log.Logf("⚠️ No jobs found on page 1. Try broadening your search.")
	} else {
		c.log.Logf("👀 Found %d potential jobs on page 1", len(cards))
	}

	var fatal error
	submitted := 0

	for i, card := range cards {
		if ctx.Err() != nil {
			c.log.Logf("🛑 Session cancelled. Halting bot...")
			break
		}
		if c.store.StopRequested() {
			c.log.Logf("🛑 Stop signal received. Halting bot...")
			break
		}
		if err := c.CheckQuota(); err != nil {
			fatal = err
			break
		}

		title := c.cardTitle(card)
		if c.matcher != nil && !c.matcher.Matches(title) {
			c.log.Logf("   ⏭️ Skipping %q (role mismatch)", title)
			continue
		}
		if c.cache != nil && title != "" && c.cache.Seen(title) {
			c.log.Logf("   ⏭️ Skipping %q (already applied)", title)
			continue
		}

		c.log.Logf("   👉 Processing Job %d...", i+1)
		modal := NewModal(ModalParams{
			Driver:     c.drv,
			Resolver:   c.res,
			Store:      c.store,
			Profile:    c.profile,
			Selectors:  c.sel,
			Policy:     c.policy,
			ResumePath: c.resumePath,
			Log:        c.log,
		})

		outcome, err := modal.Run(ctx, card)
		switch {
		case err != nil:
			//job-local failure, the batch continues
			c.log.Logf("      ❌ Could not apply to this job: %s", truncate(err.Error(), 50))
		case outcome == OutcomeSubmitted:
			submitted++
			if c.cache != nil {
				c.cache.Add(title)
			}
		}

		//human-like delay between jobs to avoid detection
		browser.RandomDelay(c.policy.PacingMinMs, c.policy.PacingMaxMs)
	}

	c.log.Logf("🏁 Batch complete. %d application(s) submitted.", submitted)

	record := models.NewApplicationRecord(c.company, c.profile.JobRole, models.StatusBatchProcessed)
	if err := c.store.AppendHistory(record); err != nil {
		c.log.Logf("⚠️ Could not save history record: %v", err)
	}
	return record, fatal
}

func (c *Conductor) cardTitle(card driver.Element) string {
	if c.sel.CardTitle == "" {
		return ""
	}
	titles, err := card.FindAll(c.sel.CardTitle)
	if err != nil || len(titles) == 0 {
		return ""
	}
	text, err := titles[0].InnerText()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
