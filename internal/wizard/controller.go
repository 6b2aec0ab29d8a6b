package wizard

import (
	"context"
	"errors"
	"time"

	"janconnect/internal/draft"
	"janconnect/internal/logging"
	"janconnect/internal/report"
)

// Submitter delivers a finalized record and returns its tracking id.
// The controller hands it a private copy, so an implementation may not
// corrupt the live record even on partial failure.
type Submitter interface {
	Submit(ctx context.Context, rec *report.Record) (trackingID string, err error)
}

// ErrCannotSkipAhead is returned by JumpTo for a step the user has not
// reached yet.
var ErrCannotSkipAhead = errors.New("cannot jump ahead of the current step")

// ErrAlreadySubmitted guards every mutation after a successful submit.
var ErrAlreadySubmitted = errors.New("record has already been submitted")

// Controller runs one wizard session: it owns the record, gates step
// transitions through Validate, and writes the record through to the
// draft store after every accepted mutation.
type Controller struct {
	flow      Flow
	step      int
	record    *report.Record
	errs      Errors
	store     draft.Store
	submitter Submitter
	submitted bool
}

// NewController creates a session, rehydrating the record from the draft
// store when a usable draft exists.
func NewController(flow Flow, store draft.Store, submitter Submitter) (*Controller, error) {
	rec, err := store.Load()
	if err != nil {
		return nil, err
	}
	resumed := rec != nil
	if rec == nil {
		rec = &report.Record{}
	}
	logging.Wizard("session start flow=%d resumed=%t", flow, resumed)
	return &Controller{
		flow:      flow,
		record:    rec,
		errs:      Errors{},
		store:     store,
		submitter: submitter,
	}, nil
}

// Flow returns which flow this session runs.
func (c *Controller) Flow() Flow { return c.flow }

// Step returns the current step index.
func (c *Controller) Step() int { return c.step }

// Record exposes the live record for display. Callers must mutate it only
// through the controller.
func (c *Controller) Record() *report.Record { return c.record }

// Errors returns the field errors from the most recent gate check.
func (c *Controller) Errors() Errors { return c.errs }

// Submitted reports whether the session reached its terminal state.
func (c *Controller) Submitted() bool { return c.submitted }

// Update merges a field mutation into the record, clears that field's
// stale error, and persists the draft. The field name must match the
// validator's error key so corrective edits clear the right message.
func (c *Controller) Update(field string, mutate func(*report.Record)) error {
	if c.submitted {
		return ErrAlreadySubmitted
	}
	mutate(c.record)
	delete(c.errs, field)
	return c.persist()
}

// AddImage appends an attachment, ignoring adds past the cap, and
// persists when the attachment was accepted.
func (c *Controller) AddImage(a report.Attachment) (bool, error) {
	if c.submitted {
		return false, ErrAlreadySubmitted
	}
	if !c.record.AddImage(a) {
		logging.WizardDebug("image %s rejected, cap reached", a.Name)
		return false, nil
	}
	return true, c.persist()
}

// RemoveImage drops an attachment by id.
func (c *Controller) RemoveImage(id string) error {
	if c.submitted {
		return ErrAlreadySubmitted
	}
	if c.record.RemoveImage(id) {
		return c.persist()
	}
	return nil
}

// ToggleOfficial flips an official's membership in the escalation set.
func (c *Controller) ToggleOfficial(id int) error {
	if c.submitted {
		return ErrAlreadySubmitted
	}
	c.record.ToggleOfficial(id)
	return c.persist()
}

// Next advances one step when the current step validates clean. It
// returns false, with Errors populated, when the gate fails.
func (c *Controller) Next() bool {
	c.errs = Validate(c.flow, c.step, c.record)
	if len(c.errs) > 0 {
		logging.WizardDebug("step %d blocked: %d field errors", c.step, len(c.errs))
		return false
	}
	if c.step < StepCount-1 {
		logging.Wizard("step %d -> %d", c.step, c.step+1)
		c.step++
	}
	return true
}

// Back retreats one step. Retreating never validates.
func (c *Controller) Back() {
	if c.step > 0 {
		logging.Wizard("step %d -> %d", c.step, c.step-1)
		c.step--
	}
}

// JumpTo navigates directly to an already-reached step.
func (c *Controller) JumpTo(i int) error {
	if i < 0 || i > c.step {
		return ErrCannotSkipAhead
	}
	if i != c.step {
		logging.Wizard("step %d -> %d (jump)", c.step, i)
		c.step = i
	}
	return nil
}

// Submit validates the final step, delivers a copy of the record, and on
// success stamps trackingId and submittedAt exactly once and clears the
// draft. On failure the record and step are untouched and the error is
// retryable.
func (c *Controller) Submit(ctx context.Context) error {
	if c.submitted {
		return ErrAlreadySubmitted
	}
	c.errs = Validate(c.flow, c.step, c.record)
	if len(c.errs) > 0 {
		return errors.New("please fix the highlighted fields before submitting")
	}

	timer := logging.StartTimer(logging.CategorySubmit, "submit")
	trackingID, err := c.submitter.Submit(ctx, c.record.Clone())
	timer.Stop()
	if err != nil {
		logging.SubmitError("submission failed: %v", err)
		return err
	}

	now := time.Now().UTC()
	c.record.TrackingID = trackingID
	c.record.SubmittedAt = &now
	c.submitted = true
	logging.Submit("submitted, tracking id %s", trackingID)

	if err := c.store.Clear(); err != nil {
		// The submission itself succeeded; a stale draft is cosmetic.
		logging.DraftWarn("failed to clear draft after submit: %v", err)
	}
	return nil
}

// Discard abandons the session: the draft is removed and the record
// reset to empty.
func (c *Controller) Discard() error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	c.record = &report.Record{}
	c.errs = Errors{}
	c.step = 0
	logging.Wizard("session discarded")
	return nil
}

func (c *Controller) persist() error {
	return c.store.Save(c.record)
}
