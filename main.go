package main

import (
	"fmt"
	"io"
	"os"

	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"tof-calibrator.klederson.com/internal/app"
	"tof-calibrator.klederson.com/internal/bluetooth"
	"tof-calibrator.klederson.com/internal/calibration"
	"tof-calibrator.klederson.com/internal/config"
	"tof-calibrator.klederson.com/internal/logging"
	"tof-calibrator.klederson.com/internal/publish"
)

var (
	v       = viper.New()
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tofcal",
		Short: "TOF Calibrator - upload calibration settings to a TOF sensor",
		Long: `TOF Calibrator collects a device id, BLE transmit power, validation
distance and broadcast interval, then publishes them to the device's
"<id>/react" topic as a TOF#<power>#<feet>#<interval ms> command.

Use --scan to list nearby BLE advertisers and pick the device id from them
(requires sudo or CAP_NET_ADMIN). Use --demo to try the form without a
network endpoint or Bluetooth hardware.`,
		Version:      versioninfo.Short(),
		SilenceUsage: true,
		RunE:         runForm,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (YAML, TOML or JSON)")
	pf.String("endpoint", config.DefaultEndpoint, "Publish endpoint URL")
	pf.Duration("timeout", 0, "Request timeout, 0 for none")
	pf.Bool("verbose", false, "Verbose logging")
	pf.String("log-file", "", "Write logs to this file")
	bindFlags(pf, map[string]string{
		"endpoint":        "endpoint",
		"request_timeout": "timeout",
		"verbose":         "verbose",
		"log_file":        "log-file",
	})

	f := rootCmd.Flags()
	f.Bool("demo", false, "Run in demo mode with a simulated endpoint and fake devices")
	f.Bool("scan", false, "Scan for nearby BLE devices to pick the device id")
	f.String("adapter", "hci0", "Bluetooth adapter to use")
	bindFlags(f, map[string]string{
		"demo":         "demo",
		"scan.enabled": "scan",
		"scan.adapter": "adapter",
	})

	rootCmd.AddCommand(newSendCmd(), newBridgeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bindFlags maps config keys to flag names so that flags win over the
// environment and config file only when set.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	// The screen belongs to Bubble Tea; logs only go to a file.
	logger, closeLog, err := logging.New(cfg.Verbose, cfg.LogFile, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := app.Options{
		Logger:  logger,
		Target:  cfg.Endpoint,
		Version: versioninfo.Short(),
		Demo:    cfg.Demo,
	}
	if cfg.Demo {
		opts.Publisher = publish.NewDemoPublisher(config.DemoLatency, config.DemoFailEvery, logger)
		opts.Scanner = bluetooth.NewMockScanner()
		opts.Target = "simulated endpoint"
	} else {
		opts.Publisher = newHTTPPublisher(cfg, logger)
		if cfg.Scan.Enabled {
			opts.Scanner = bluetooth.NewBLEScanner(logger)
		}
	}

	logger.WithFields(logrus.Fields{
		"version":  versioninfo.Short(),
		"endpoint": cfg.Endpoint,
		"demo":     cfg.Demo,
		"scan":     cfg.Scan.Enabled,
		"adapter":  cfg.Scan.Adapter,
	}).Info("Starting TOF Calibrator")

	model := app.New(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if err := model.StartScanner(p); err != nil {
		logger.WithError(err).Warn("Nearby device scan unavailable")
		fmt.Fprintf(os.Stderr, "\nWarning: %v\n", err)
		fmt.Fprintln(os.Stderr, "Continuing without nearby devices. Bluetooth scanning requires elevated permissions:")
		fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./tofcal")
	}

	_, err = p.Run()
	return err
}

func newHTTPPublisher(cfg *config.Config, logger *logrus.Logger) calibration.Publisher {
	client := publish.NewHTTPClient(cfg.RequestTimeout, logger)
	return publish.NewHTTPPublisher(cfg.Endpoint, client, logger)
}
