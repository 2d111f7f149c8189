package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"tof-calibrator.klederson.com/internal/bridge"
	"tof-calibrator.klederson.com/internal/config"
	"tof-calibrator.klederson.com/internal/logging"
	"tof-calibrator.klederson.com/internal/publish"
)

func newBridgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Serve POST /publish and relay each payload onto an MQTT broker",
		Args:  cobra.NoArgs,
		RunE:  runBridge,
	}

	f := cmd.Flags()
	f.Uint("port", config.DefaultBridgePort, "HTTP listen port")
	f.String("mqtt-url", "mqtt://localhost:1883", "MQTT broker URL")
	f.Bool("http-log", false, "Log every HTTP request")
	bindFlags(f, map[string]string{
		"bridge.port":     "port",
		"mqtt.url":        "mqtt-url",
		"bridge.http_log": "http-log",
	})
	return cmd
}

func runBridge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Verbose, cfg.LogFile, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	clientID := fmt.Sprintf("%s-bridge-%s", cfg.MQTT.ClientPrefix, uuid.NewString()[:8])
	upstream, err := publish.NewMQTTPublisher(cfg.MQTT.URL, clientID, logger)
	if err != nil {
		return err
	}
	defer upstream.Close()

	srv := bridge.NewServer(upstream, logger, cfg.Bridge.HttpLog).HTTPServer(cfg.Bridge.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("Bridge listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Bridge forced to shutdown")
	}
	return nil
}
