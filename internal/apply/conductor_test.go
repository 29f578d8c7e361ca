package apply

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-applyninja-automation/internal/dedup"
	"go-applyninja-automation/internal/driver"
	"go-applyninja-automation/internal/filter"
	"go-applyninja-automation/internal/models"
)

func newTestConductor(drv *driver.StubDriver, oracle *fakeOracle, st *memStore, profile *models.CandidateProfile) *Conductor {
	return NewConductor(ConductorParams{
		Driver:    drv,
		Resolver:  NewResolver(oracle, profile),
		Store:     st,
		Profile:   profile,
		Selectors: testSelectors(),
		Policy:    testPolicy(),
		Log:       noopLog{},
		Company:   "LinkedIn Network",
	})
}

// cardWithTitle registers one job card carrying a title child.
func cardWithTitle(title string) *driver.StubElement {
	sel := testSelectors()
	card := driver.NewStubElement()
	titleEl := driver.NewStubElement()
	titleEl.Text = title
	card.Children[sel.CardTitle] = []*driver.StubElement{titleEl}
	return card
}

func TestCheckQuota(t *testing.T) {
	profile := &models.CandidateProfile{ApplicationCount: 3}
	c := newTestConductor(driver.NewStubDriver(), &fakeOracle{}, newMemStore(profile), profile)

	err := c.CheckQuota()
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	//premium profiles are never capped
	profile.IsPremium = true
	assert.NoError(t, c.CheckQuota())

	profile.IsPremium = false
	profile.ApplicationCount = 2
	assert.NoError(t, c.CheckQuota())
}

func TestRunBatchStopsAtQuota(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()

	drv.Set(sel.ApplyButton, driver.NewStubElement())

	//the first job advances one step before submitting, pushing the
	//counter from 2 to the cap of 3
	first := cardWithTitle("Golang Developer")
	second := cardWithTitle("Golang Engineer")
	drv.Set(sel.JobCard, first, second)

	next := driver.NewStubElement()
	next.OnClick = func() {
		drv.Set(sel.SubmitButton, driver.NewStubElement())
		drv.Remove(sel.NextButtons[0])
	}
	drv.Set(sel.NextButtons[0], next)

	profile := &models.CandidateProfile{JobRole: "Golang Developer", ApplicationCount: 2}
	st := newMemStore(profile)
	c := newTestConductor(drv, &fakeOracle{}, st, profile)

	record, err := c.RunBatch(context.Background())
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	assert.Equal(t, 1, first.Clicks)
	assert.Equal(t, 0, second.Clicks, "guard must block the job before it opens")
	assert.Equal(t, 3, profile.ApplicationCount)

	//exactly one batch-level record, even on a quota abort
	require.Len(t, st.history, 1)
	assert.Equal(t, models.StatusBatchProcessed, record.Status)
	assert.Equal(t, "LinkedIn Network", record.Company)
	assert.Equal(t, record.ID, st.history[0].ID)
}

func TestRunBatchStopSentinel(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()

	drv.Set(sel.ApplyButton, driver.NewStubElement())

	first := cardWithTitle("Golang Developer")
	second := cardWithTitle("Golang Engineer")
	drv.Set(sel.JobCard, first, second)

	profile := &models.CandidateProfile{IsPremium: true}
	st := newMemStore(profile)

	//a stale stop request from a previous session must not cancel this one
	st.stop = true

	submit := driver.NewStubElement()
	submit.OnClick = func() {
		st.stop = true //operator hits stop mid-batch
	}
	drv.Set(sel.SubmitButton, submit)

	c := newTestConductor(drv, &fakeOracle{}, st, profile)
	record, err := c.RunBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Clicks, "stale sentinel was cleared before the loop")
	assert.Equal(t, 0, second.Clicks, "fresh sentinel halts before the next job")
	assert.Equal(t, models.StatusBatchProcessed, record.Status)
	require.Len(t, st.history, 1)
}

func TestRunBatchCancelledContext(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()

	card := cardWithTitle("Golang Developer")
	drv.Set(sel.JobCard, card)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	profile := &models.CandidateProfile{IsPremium: true}
	st := newMemStore(profile)
	c := newTestConductor(drv, &fakeOracle{}, st, profile)

	_, err := c.RunBatch(ctx)
	require.NoError(t, err, "cancellation is a clean halt, not a failure")
	assert.Equal(t, 0, card.Clicks)
	require.Len(t, st.history, 1)
}

func TestRunBatchPrefilters(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()

	drv.Set(sel.ApplyButton, driver.NewStubElement())
	drv.Set(sel.SubmitButton, driver.NewStubElement())

	mismatch := cardWithTitle("Senior Accountant")
	seen := cardWithTitle("Golang Developer at SeenCorp")
	fresh := cardWithTitle("Golang Engineer")
	drv.Set(sel.JobCard, mismatch, seen, fresh)

	cache := dedup.NewAppliedCache(t.TempDir())
	cache.Add("Golang Developer at SeenCorp")

	profile := &models.CandidateProfile{JobRole: "Golang Developer", IsPremium: true}
	st := newMemStore(profile)
	c := NewConductor(ConductorParams{
		Driver:    drv,
		Resolver:  NewResolver(&fakeOracle{}, profile),
		Store:     st,
		Profile:   profile,
		Selectors: sel,
		Policy:    testPolicy(),
		Log:       noopLog{},
		Cache:     cache,
		Matcher:   filter.NewRoleMatcher(profile.JobRole),
		Company:   "LinkedIn Network",
	})

	_, err := c.RunBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, mismatch.Clicks)
	assert.Equal(t, 0, seen.Clicks)
	assert.Equal(t, 1, fresh.Clicks)

	//a submitted job lands in the dedup cache
	assert.True(t, cache.Seen("Golang Engineer"))
}

func TestRunBatchContinuesAfterJobFailure(t *testing.T) {
	drv := driver.NewStubDriver()
	sel := testSelectors()

	drv.Set(sel.ApplyButton, driver.NewStubElement())

	//the first job's modal exposes no controls at all; the second one
	//regains a submit button when its card opens
	broken := cardWithTitle("Golang Developer")
	working := cardWithTitle("Golang Engineer")
	working.OnClick = func() {
		drv.Set(sel.SubmitButton, driver.NewStubElement())
	}
	drv.Set(sel.JobCard, broken, working)

	profile := &models.CandidateProfile{IsPremium: true}
	st := newMemStore(profile)
	c := newTestConductor(drv, &fakeOracle{}, st, profile)

	_, err := c.RunBatch(context.Background())
	require.NoError(t, err, "a stuck modal never fails the batch")

	assert.Equal(t, 1, broken.Clicks)
	assert.Equal(t, 1, working.Clicks)
	require.Len(t, st.history, 1)
}
