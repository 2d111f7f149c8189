package calibration

import (
	"context"
	"errors"
)

// ErrBusy is returned by Begin while a publish is outstanding.
var ErrBusy = errors.New("a submission is already in flight")

// Publisher sends a payload to the device topic.
type Publisher interface {
	Publish(ctx context.Context, p Payload) error
}

// StatusKind enumerates the submission lifecycle.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusInvalid
	StatusInFlight
	StatusSucceeded
	StatusFailed
)

func (k StatusKind) String() string {
	switch k {
	case StatusInvalid:
		return "invalid"
	case StatusInFlight:
		return "in-flight"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Status is the current submission state. Reason carries the validation
// message for StatusInvalid and the publish error for StatusFailed.
type Status struct {
	Kind   StatusKind
	Reason string
}

// Controller owns the form fields and the submission state. It is not safe
// for concurrent use; callers serialize access (the Bubble Tea event loop
// does this for the interactive screen).
type Controller struct {
	fields Fields
	status Status

	errMsg     string
	notice     bool // success notice visible
	failNotice string
	last       Payload
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) Fields() Fields { return c.fields }

func (c *Controller) SetDeviceID(v string)    { c.fields.DeviceID = v }
func (c *Controller) SetTxPower(v string)     { c.fields.TxPower = v }
func (c *Controller) SetFeet(v string)        { c.fields.Feet = v }
func (c *Controller) SetBLEInterval(v string) { c.fields.BLEInterval = v }

// CycleTxPower moves the tx power selection by delta levels.
func (c *Controller) CycleTxPower(delta int) {
	c.fields.TxPower = CycleTxPower(c.fields.TxPower, delta)
}

func (c *Controller) Status() Status { return c.status }

// Loading is true only between Begin and Complete.
func (c *Controller) Loading() bool { return c.status.Kind == StatusInFlight }

// Error is the inline validation message, empty when the last
// validation passed.
func (c *Controller) Error() string { return c.errMsg }

// SuccessNotice reports whether the "updated" notice is showing.
func (c *Controller) SuccessNotice() bool { return c.notice }

// FailureNotice is the visible publish failure reason, if any.
func (c *Controller) FailureNotice() string { return c.failNotice }

// LastPayload is the payload built by the most recent successful Begin.
func (c *Controller) LastPayload() Payload { return c.last }

// Begin validates the fields and enters the in-flight state. On a
// validation failure the inline error is set and no payload is returned.
func (c *Controller) Begin() (Payload, error) {
	if c.Loading() {
		return Payload{}, ErrBusy
	}

	cmd, err := Validate(c.fields)
	if err != nil {
		c.errMsg = err.Error()
		c.status = Status{Kind: StatusInvalid, Reason: err.Error()}
		return Payload{}, err
	}

	c.errMsg = ""
	c.failNotice = ""
	c.notice = false
	c.last = cmd.Payload()
	c.status = Status{Kind: StatusInFlight}
	return c.last, nil
}

// Complete records the publish outcome and clears the loading state.
// It is a no-op unless a submission is in flight.
func (c *Controller) Complete(err error) {
	if !c.Loading() {
		return
	}
	if err != nil {
		c.failNotice = err.Error()
		c.status = Status{Kind: StatusFailed, Reason: err.Error()}
		return
	}
	c.notice = true
	c.status = Status{Kind: StatusSucceeded}
}

// Submit runs one full validate, publish, complete cycle synchronously.
func (c *Controller) Submit(ctx context.Context, pub Publisher) error {
	payload, err := c.Begin()
	if err != nil {
		return err
	}
	err = pub.Publish(ctx, payload)
	c.Complete(err)
	return err
}

// DismissNotice hides the success or failure notice.
func (c *Controller) DismissNotice() {
	c.notice = false
	c.failNotice = ""
}
