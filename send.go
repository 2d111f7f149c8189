package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"tof-calibrator.klederson.com/internal/calibration"
	"tof-calibrator.klederson.com/internal/config"
	"tof-calibrator.klederson.com/internal/logging"
	"tof-calibrator.klederson.com/internal/publish"
)

func newSendCmd() *cobra.Command {
	var (
		fields  calibration.Fields
		viaMQTT bool
		mqttURL string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate and publish one calibration without the interactive form",
		Example: `  tofcal send --device-id dev1 --tx-power -20 --feet 10 --interval 5
  tofcal send --device-id dev1 --tx-power 0 --feet 3 --interval 3 --mqtt --mqtt-url mqtt://broker:1883`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fields.TxPower != "" {
				if _, err := calibration.ParseTxPower(fields.TxPower); err != nil {
					return err
				}
			}

			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			if mqttURL != "" {
				cfg.MQTT.URL = mqttURL
			}

			logger, closeLog, err := logging.New(cfg.Verbose, cfg.LogFile, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var pub calibration.Publisher
			if viaMQTT {
				clientID := fmt.Sprintf("%s-send-%s", cfg.MQTT.ClientPrefix, uuid.NewString()[:8])
				mp, err := publish.NewMQTTPublisher(cfg.MQTT.URL, clientID, logger)
				if err != nil {
					return err
				}
				defer mp.Close()
				pub = mp
			} else {
				pub = newHTTPPublisher(cfg, logger)
			}

			ctrl := calibration.NewController()
			ctrl.SetDeviceID(fields.DeviceID)
			ctrl.SetTxPower(fields.TxPower)
			ctrl.SetFeet(fields.Feet)
			ctrl.SetBLEInterval(fields.BLEInterval)

			err = ctrl.Submit(ctx, pub)
			if errors.Is(err, calibration.ErrMissingFields) || errors.Is(err, calibration.ErrIntervalTooShort) {
				return err
			}
			if err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}

			p := ctrl.LastPayload()
			fmt.Fprintf(cmd.OutOrStdout(), "Device has been updated (%s <- %s)\n", p.Topic, p.Message)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&fields.DeviceID, "device-id", "", "Device identifier")
	f.StringVar(&fields.TxPower, "tx-power", "", fmt.Sprintf("BLE transmit power in dBm, one of %v", calibration.TxPowerLevels))
	f.StringVar(&fields.Feet, "feet", "", "Validation distance in feet")
	f.StringVar(&fields.BLEInterval, "interval", "", "BLE broadcast interval in seconds")
	f.BoolVar(&viaMQTT, "mqtt", false, "Publish straight to the MQTT broker instead of the HTTP endpoint")
	f.StringVar(&mqttURL, "mqtt-url", "", "MQTT broker URL (overrides mqtt.url)")

	return cmd
}
