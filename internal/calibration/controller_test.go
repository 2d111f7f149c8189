package calibration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	calls    []Payload
	err      error
	observed []bool // Loading() at call time
	ctrl     *Controller
}

func (p *recordingPublisher) Publish(_ context.Context, payload Payload) error {
	p.calls = append(p.calls, payload)
	if p.ctrl != nil {
		p.observed = append(p.observed, p.ctrl.Loading())
	}
	return p.err
}

func filledController() *Controller {
	c := NewController()
	c.SetDeviceID("dev1")
	c.SetTxPower("-20")
	c.SetFeet("10")
	c.SetBLEInterval("5")
	return c
}

func TestSubmitMissingFieldNoRequest(t *testing.T) {
	assert := assert.New(t)

	c := filledController()
	c.SetFeet("")
	pub := &recordingPublisher{}

	err := c.Submit(context.Background(), pub)
	assert.ErrorIs(err, ErrMissingFields)
	assert.Empty(pub.calls)
	assert.Equal(ErrMissingFields.Error(), c.Error())
	assert.Equal(StatusInvalid, c.Status().Kind)
	assert.False(c.Loading())
}

func TestSubmitShortIntervalNoRequest(t *testing.T) {
	assert := assert.New(t)

	c := filledController()
	c.SetBLEInterval("2")
	pub := &recordingPublisher{}

	err := c.Submit(context.Background(), pub)
	assert.ErrorIs(err, ErrIntervalTooShort)
	assert.Empty(pub.calls)
	assert.Equal(ErrIntervalTooShort.Error(), c.Error())
}

func TestSubmitSuccess(t *testing.T) {
	require := require.New(t)

	c := filledController()
	c.SetBLEInterval("1")
	_ = c.Submit(context.Background(), &recordingPublisher{})
	require.NotEmpty(c.Error())

	c.SetBLEInterval("5")
	pub := &recordingPublisher{ctrl: c}
	require.NoError(c.Submit(context.Background(), pub))

	require.Len(pub.calls, 1)
	assert.Equal(t, Payload{Topic: "dev1/react", Message: "TOF#-20#10#5000"}, pub.calls[0])
	assert.Equal(t, []bool{true}, pub.observed, "loading while publishing")
	assert.False(t, c.Loading())
	assert.True(t, c.SuccessNotice())
	assert.Empty(t, c.FailureNotice())
	assert.Empty(t, c.Error(), "validation error cleared")
	assert.Equal(t, StatusSucceeded, c.Status().Kind)
}

func TestSubmitFailure(t *testing.T) {
	assert := assert.New(t)

	c := filledController()
	pub := &recordingPublisher{err: errors.New("publish endpoint returned 500")}

	err := c.Submit(context.Background(), pub)
	assert.Error(err)
	assert.Len(pub.calls, 1)
	assert.False(c.Loading())
	assert.False(c.SuccessNotice())
	assert.Equal("publish endpoint returned 500", c.FailureNotice())
	assert.Equal(StatusFailed, c.Status().Kind)
	assert.Empty(c.Error(), "validation passed, inline error stays clear")
}

func TestBeginWhileInFlight(t *testing.T) {
	assert := assert.New(t)

	c := filledController()
	_, err := c.Begin()
	assert.NoError(err)
	assert.True(c.Loading())

	_, err = c.Begin()
	assert.ErrorIs(err, ErrBusy)

	c.Complete(nil)
	assert.False(c.Loading())
	assert.True(c.SuccessNotice())
}

func TestCompleteWithoutBegin(t *testing.T) {
	c := filledController()
	c.Complete(errors.New("late"))

	assert.Equal(t, StatusIdle, c.Status().Kind)
	assert.Empty(t, c.FailureNotice())
}

func TestNewSubmissionClearsNotices(t *testing.T) {
	assert := assert.New(t)

	c := filledController()
	assert.NoError(c.Submit(context.Background(), &recordingPublisher{}))
	assert.True(c.SuccessNotice())

	_, err := c.Begin()
	assert.NoError(err)
	assert.False(c.SuccessNotice())

	c.Complete(errors.New("down"))
	assert.Equal("down", c.FailureNotice())

	c.DismissNotice()
	assert.Empty(c.FailureNotice())
	assert.False(c.SuccessNotice())
}

func TestControllerCycleTxPower(t *testing.T) {
	c := NewController()
	c.CycleTxPower(1)
	c.CycleTxPower(1)
	assert.Equal(t, "-20", c.Fields().TxPower)
}
