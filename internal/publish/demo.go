package publish

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"tof-calibrator.klederson.com/internal/calibration"
)

// DemoPublisher simulates the endpoint without touching the network.
// Every failEvery-th call fails with a 503 so the failure notice can be seen.
type DemoPublisher struct {
	latency   time.Duration
	failEvery int
	logger    *logrus.Logger

	mu    sync.Mutex
	calls int
}

func NewDemoPublisher(latency time.Duration, failEvery int, logger *logrus.Logger) *DemoPublisher {
	return &DemoPublisher{
		latency:   latency,
		failEvery: failEvery,
		logger:    logger,
	}
}

func (p *DemoPublisher) Publish(ctx context.Context, payload calibration.Payload) error {
	p.mu.Lock()
	p.calls++
	n := p.calls
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("demo publish: %w", ctx.Err())
	case <-time.After(p.latency):
	}

	log := p.logger.WithFields(logrus.Fields{"topic": payload.Topic, "message": payload.Message, "call": n})
	if p.failEvery > 0 && n%p.failEvery == 0 {
		log.Warn("Demo publish failed")
		return &StatusError{Code: http.StatusServiceUnavailable}
	}
	log.Info("Demo publish ok")
	return nil
}

// Calls returns how many publishes were attempted.
func (p *DemoPublisher) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
