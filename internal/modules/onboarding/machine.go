package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type Step int

const (
	StepApply Step = iota + 1
	StepExperience
	StepAvailability
	StepSLA
	StepVerification
	StepDryRun
	StepGoLive
)

type Event string

const (
	EventNext Event = "next"
	EventBack Event = "back"
)

var (
	ErrGateClosed         = errors.New("current step is not complete")
	ErrNoTransition       = errors.New("transition not allowed from this step")
	ErrWrongStep          = errors.New("action not available on this step")
	ErrDraftLocked        = errors.New("draft can no longer be edited")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrAlreadySubmitted   = errors.New("onboarding already submitted")
	ErrSubmissionFailed   = errors.New("submission failed")

	// ErrDraftRejected is returned by a Submitter when the draft itself is
	// unacceptable. The wizard reopens the dry-run step so it can be fixed.
	ErrDraftRejected = errors.New("draft rejected")
)

// GateError explains why the wizard could not leave Step. It matches
// ErrGateClosed with errors.Is.
type GateError struct {
	Step   Step
	Reason error
}

func (e *GateError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Reason)
}

func (e *GateError) Is(target error) bool { return target == ErrGateClosed }

func (e *GateError) Unwrap() error { return e.Reason }

// State is one step of the wizard. Ready reports why the wizard may not leave
// the step yet, or nil when the gate is open.
type State interface {
	Step() Step
	Title() string
	Ready(w *Wizard) error
}

type applyState struct{}

func (applyState) Step() Step          { return StepApply }
func (applyState) Title() string       { return "Apply" }
func (applyState) Ready(*Wizard) error { return nil }

type experienceState struct{}

func (experienceState) Step() Step            { return StepExperience }
func (experienceState) Title() string         { return "Experience & capacity" }
func (experienceState) Ready(w *Wizard) error { return w.draft.experienceGate() }

type availabilityState struct{}

func (availabilityState) Step() Step            { return StepAvailability }
func (availabilityState) Title() string         { return "Availability" }
func (availabilityState) Ready(w *Wizard) error { return w.draft.availabilityGate() }

type slaState struct{}

func (slaState) Step() Step    { return StepSLA }
func (slaState) Title() string { return "Service level agreement" }
func (slaState) Ready(w *Wizard) error {
	if !w.slaScrolled {
		return errors.New("scroll to the end of the terms")
	}
	if !w.draft.SLAAccepted {
		return errors.New("accept the service level agreement")
	}
	return nil
}

type verificationState struct{}

func (verificationState) Step() Step            { return StepVerification }
func (verificationState) Title() string         { return "Verification" }
func (verificationState) Ready(w *Wizard) error { return w.draft.verificationGate() }

type dryRunState struct{}

func (dryRunState) Step() Step    { return StepDryRun }
func (dryRunState) Title() string { return "Dry run" }
func (dryRunState) Ready(w *Wizard) error {
	if !w.dryRunAnswered {
		return errors.New("accept or decline the sample booking")
	}
	return nil
}

type goLiveState struct{}

func (goLiveState) Step() Step          { return StepGoLive }
func (goLiveState) Title() string       { return "Go live" }
func (goLiveState) Ready(*Wizard) error { return nil }

var states = map[Step]State{
	StepApply:        applyState{},
	StepExperience:   experienceState{},
	StepAvailability: availabilityState{},
	StepSLA:          slaState{},
	StepVerification: verificationState{},
	StepDryRun:       dryRunState{},
	StepGoLive:       goLiveState{},
}

// transitions is the whole wizard graph. GoLive has no way out.
var transitions = map[Step]map[Event]Step{
	StepApply:        {EventNext: StepExperience},
	StepExperience:   {EventNext: StepAvailability, EventBack: StepApply},
	StepAvailability: {EventNext: StepSLA, EventBack: StepExperience},
	StepSLA:          {EventNext: StepVerification, EventBack: StepAvailability},
	StepVerification: {EventNext: StepDryRun, EventBack: StepSLA},
	StepDryRun:       {EventNext: StepGoLive, EventBack: StepVerification},
	StepGoLive:       {},
}

type SubmissionStatus string

const (
	SubmissionIdle      SubmissionStatus = "idle"
	SubmissionInFlight  SubmissionStatus = "submitting"
	SubmissionFailed    SubmissionStatus = "failed"
	SubmissionSucceeded SubmissionStatus = "submitted"
)

// Submitter persists the finished draft. It is called at most once per
// successful go-live.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) error
}

type SubmitterFunc func(ctx context.Context, draft Draft) error

func (f SubmitterFunc) Submit(ctx context.Context, draft Draft) error { return f(ctx, draft) }

type Wizard struct {
	mu sync.Mutex

	state          State
	draft          Draft
	slaScrolled    bool
	dryRunAnswered bool
	submission     SubmissionStatus
	submitErr      error
	submitter      Submitter
}

func NewWizard(submitter Submitter) *Wizard {
	return &Wizard{
		state:      states[StepApply],
		draft:      NewDraft(),
		submission: SubmissionIdle,
		submitter:  submitter,
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Step()
}

// Update merges a partial draft. Once live the draft is frozen so a retry
// resubmits exactly what failed.
func (w *Wizard) Update(p DraftPatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Step() == StepGoLive {
		return ErrDraftLocked
	}
	w.draft.Apply(p)
	return nil
}

// MarkSLAScrolled records that the terms were read to the bottom.
func (w *Wizard) MarkSLAScrolled() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Step() != StepSLA {
		return ErrWrongStep
	}
	w.slaScrolled = true
	return nil
}

// RecordDryRun stores the chef's answer to the sample booking. Either answer
// opens the gate.
func (w *Wizard) RecordDryRun(accepted bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Step() != StepDryRun {
		return ErrWrongStep
	}
	w.draft.DryRunAccepted = accepted
	w.dryRunAnswered = true
	return nil
}

// Next moves forward when every gate up to the current step is open. Entering
// GoLive submits the draft; a submission error leaves the wizard on GoLive in
// the failed state and is returned wrapped in ErrSubmissionFailed. A rejected
// draft instead sends the wizard back to DryRun as a closed gate.
func (w *Wizard) Next(ctx context.Context) error {
	draft, submit, err := w.advance()
	if err != nil || !submit {
		return err
	}
	return w.deliver(ctx, draft)
}

func (w *Wizard) advance() (Draft, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submission == SubmissionInFlight {
		return Draft{}, false, ErrSubmissionInFlight
	}
	target, ok := transitions[w.state.Step()][EventNext]
	if !ok {
		return Draft{}, false, ErrNoTransition
	}
	if err := w.check(); err != nil {
		return Draft{}, false, err
	}

	w.state = states[target]
	if target != StepGoLive {
		return Draft{}, false, nil
	}
	w.submission = SubmissionInFlight
	return w.draft.Copy(), true, nil
}

// check returns the first closed gate from Apply up to the current step, so a
// later edit cannot undo a step already passed. Before GoLive the draft must
// also satisfy the stored field rules. Callers hold w.mu.
func (w *Wizard) check() error {
	current := w.state.Step()
	for step := StepApply; step <= current; step++ {
		if reason := states[step].Ready(w); reason != nil {
			return &GateError{Step: step, Reason: reason}
		}
	}
	if transitions[current][EventNext] == StepGoLive {
		if reason := w.draft.validate(); reason != nil {
			return &GateError{Step: current, Reason: reason}
		}
	}
	return nil
}

// Back moves one step back on steps 2 to 6.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	target, ok := transitions[w.state.Step()][EventBack]
	if !ok {
		return ErrNoTransition
	}
	w.state = states[target]
	return nil
}

// Retry resubmits the frozen draft after a failed go-live.
func (w *Wizard) Retry(ctx context.Context) error {
	w.mu.Lock()
	if w.state.Step() != StepGoLive {
		w.mu.Unlock()
		return ErrWrongStep
	}
	switch w.submission {
	case SubmissionInFlight:
		w.mu.Unlock()
		return ErrSubmissionInFlight
	case SubmissionSucceeded:
		w.mu.Unlock()
		return ErrAlreadySubmitted
	}
	w.submission = SubmissionInFlight
	draft := w.draft.Copy()
	w.mu.Unlock()

	return w.deliver(ctx, draft)
}

func (w *Wizard) deliver(ctx context.Context, draft Draft) error {
	err := w.submitter.Submit(ctx, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	if errors.Is(err, ErrDraftRejected) {
		w.state = states[StepDryRun]
		w.submission = SubmissionIdle
		w.submitErr = nil
		return &GateError{Step: StepDryRun, Reason: err}
	}
	if err != nil {
		w.submission = SubmissionFailed
		w.submitErr = err
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	w.submission = SubmissionSucceeded
	w.submitErr = nil
	return nil
}

type SubmissionView struct {
	Status SubmissionStatus `json:"status"`
	Error  string           `json:"error,omitempty"`
}

// View is a consistent snapshot of the wizard for rendering.
type View struct {
	Step          Step           `json:"step"`
	Title         string         `json:"title"`
	Draft         Draft          `json:"draft"`
	SLAScrolled   bool           `json:"sla_scrolled"`
	CanAdvance    bool           `json:"can_advance"`
	CanGoBack     bool           `json:"can_go_back"`
	BlockedReason string         `json:"blocked_reason,omitempty"`
	Submission    SubmissionView `json:"submission"`
}

func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	step := w.state.Step()
	v := View{
		Step:        step,
		Title:       w.state.Title(),
		Draft:       w.draft.Copy(),
		SLAScrolled: w.slaScrolled,
		Submission:  SubmissionView{Status: w.submission},
	}
	if w.submitErr != nil {
		v.Submission.Error = w.submitErr.Error()
	}

	_, v.CanGoBack = transitions[step][EventBack]
	if _, ok := transitions[step][EventNext]; ok {
		var gate *GateError
		if err := w.check(); errors.As(err, &gate) {
			v.BlockedReason = gate.Reason.Error()
		} else {
			v.CanAdvance = w.submission != SubmissionInFlight
		}
	}
	return v
}
