package bridge

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"tof-calibrator.klederson.com/internal/calibration"
	"tof-calibrator.klederson.com/internal/config"
)

// Upstream is where accepted payloads are relayed, normally the MQTT broker.
type Upstream interface {
	Publish(ctx context.Context, p calibration.Payload) error
	IsConnected() bool
}

// Server accepts publish requests over HTTP and relays them upstream.
type Server struct {
	upstream Upstream
	logger   *logrus.Logger
	httpLog  bool
}

func NewServer(upstream Upstream, logger *logrus.Logger, httpLog bool) *Server {
	return &Server{upstream: upstream, logger: logger, httpLog: httpLog}
}

// HTTPServer wraps the routes in an http.Server listening on port.
func (s *Server) HTTPServer(port uint) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.POST(config.PublishPath, s.PublishHandler)
	e.GET("/healthcheck", s.HealthCheckHandler)

	return e
}

func (s *Server) PublishHandler(c echo.Context) error {
	var p calibration.Payload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	p.Topic = strings.TrimSpace(p.Topic)
	if p.Topic == "" || p.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "topic and message are required"})
	}

	log := s.logger.WithFields(logrus.Fields{
		"topic":      p.Topic,
		"message":    p.Message,
		"request_id": c.Request().Header.Get("X-Request-ID"),
	})

	ctx, cancel := context.WithTimeout(c.Request().Context(), config.MQTTTimeout)
	defer cancel()
	if err := s.upstream.Publish(ctx, p); err != nil {
		log.WithError(err).Error("Relay failed")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	log.Info("Relayed")
	return c.JSON(http.StatusOK, map[string]string{"status": "published"})
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	if s.upstream.IsConnected() {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}
