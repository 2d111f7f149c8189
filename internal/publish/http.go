package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"tof-calibrator.klederson.com/internal/calibration"
)

// StatusError is returned when the endpoint answers outside the 2xx range.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("publish endpoint returned %d %s", e.Code, http.StatusText(e.Code))
}

// HTTPPublisher posts payloads as JSON to a fixed endpoint.
type HTTPPublisher struct {
	endpoint string
	client   *http.Client
	logger   *logrus.Logger
}

func NewHTTPPublisher(endpoint string, client *http.Client, logger *logrus.Logger) *HTTPPublisher {
	return &HTTPPublisher{
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

// Publish issues exactly one POST. The response body is drained and
// ignored; only the status code decides success.
func (p *HTTPPublisher) Publish(ctx context.Context, payload calibration.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log := p.logger.WithFields(logrus.Fields{
		"topic":      payload.Topic,
		"message":    payload.Message,
		"request_id": reqID,
	})
	log.Debug("Publishing calibration")

	resp, err := p.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Error while making API call")
		return fmt.Errorf("publish request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Error("API call failed")
		return &StatusError{Code: resp.StatusCode}
	}

	log.WithField("status", resp.StatusCode).Info("API call successful")
	return nil
}
