package bridge

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tof-calibrator.klederson.com/internal/calibration"
)

type fakeUpstream struct {
	got       []calibration.Payload
	err       error
	connected bool
}

func (f *fakeUpstream) Publish(_ context.Context, p calibration.Payload) error {
	f.got = append(f.got, p)
	return f.err
}

func (f *fakeUpstream) IsConnected() bool { return f.connected }

func newTestServer(up Upstream) http.Handler {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewServer(up, l, false).RegisterRoutes()
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/publish", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublishRelays(t *testing.T) {
	require := require.New(t)
	up := &fakeUpstream{}

	rec := post(newTestServer(up), `{"topic":"dev1/react","message":"TOF#-20#10#5000"}`)

	require.Equal(http.StatusOK, rec.Code)
	require.Len(up.got, 1)
	assert.Equal(t, calibration.Payload{Topic: "dev1/react", Message: "TOF#-20#10#5000"}, up.got[0])
	assert.Contains(t, rec.Body.String(), "published")
}

func TestPublishBadRequest(t *testing.T) {
	assert := assert.New(t)
	up := &fakeUpstream{}
	h := newTestServer(up)

	assert.Equal(http.StatusBadRequest, post(h, `{"topic":`).Code)
	assert.Equal(http.StatusBadRequest, post(h, `{"topic":"dev1/react"}`).Code)
	assert.Equal(http.StatusBadRequest, post(h, `{"topic":"  ","message":"x"}`).Code)
	assert.Empty(up.got)
}

func TestPublishUpstreamFailure(t *testing.T) {
	up := &fakeUpstream{err: errors.New("broker down")}

	rec := post(newTestServer(up), `{"topic":"dev1/react","message":"TOF#0#1#3000"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "broker down")
}

func TestHealthCheck(t *testing.T) {
	up := &fakeUpstream{}
	h := newTestServer(up)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	up.connected = true
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTPServerAddr(t *testing.T) {
	srv := NewServer(&fakeUpstream{}, logrus.New(), false).HTTPServer(8001)
	assert.Equal(t, ":8001", srv.Addr)
}
