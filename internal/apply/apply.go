// The apply engine drives one portal's in-page application modal: classify
// the visible controls, resolve answers through the AI oracle, retry once on
// validation failure, advance through the steps and record the outcome.

package apply

// Logf is the append-only log stream failures and progress are reported to.
type Logf interface {
	Logf(format string, args ...any)
}

// Selectors name the portal's controls. Only one portal flow is modeled;
// the linkedin package provides the concrete set, tests provide their own.
type Selectors struct {
	JobCard     string
	CardTitle   string
	ApplyButton string

	FileInput string
	TextInput string
	Select    string
	Fieldset  string
	Radio     string
	Legend    string
	GroupItem string
	Checkbox  string

	SubmitButton  string
	NextButtons   []string
	DismissButton string

	// Parent climbs one level up from a rejected input to find its
	// inline validation message.
	Parent       string
	ErrorMessage string
}

// Policy holds the fill heuristics and bounds. The defaults mirror the
// portal behavior the bot was tuned against; tests shrink the delays.
type Policy struct {
	// SkipAnsweredGroups leaves radio groups with a pre-selected option alone.
	SkipAnsweredGroups bool
	// CheckboxAffirmative treats an ambiguous oracle reply to a checkbox
	// question as a yes.
	CheckboxAffirmative bool
	// MaxModalSteps bounds step visits per job so a malformed flow cannot
	// loop forever.
	MaxModalSteps int
	// FreeQuota is the number of applications a non-premium profile may send.
	FreeQuota int

	//delays, milliseconds
	SettleMinMs int
	SettleMaxMs int
	PacingMinMs int
	PacingMaxMs int
}

func DefaultPolicy() Policy {
	return Policy{
		SkipAnsweredGroups:  true,
		CheckboxAffirmative: true,
		MaxModalSteps:       5,
		FreeQuota:           3,
		SettleMinMs:         500,
		SettleMaxMs:         2000,
		PacingMinMs:         5000,
		PacingMaxMs:         10000,
	}
}
