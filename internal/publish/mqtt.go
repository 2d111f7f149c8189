package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
	"tof-calibrator.klederson.com/internal/calibration"
	"tof-calibrator.klederson.com/internal/config"
)

// MQTTPublisher publishes payload messages straight onto the broker,
// bypassing the HTTP endpoint.
type MQTTPublisher struct {
	client mqtt.Client
	logger *logrus.Logger
}

// NewMQTTPublisher connects to brokerURL. Supported schemes are mqtt, mqtts,
// ws and wss; credentials may be embedded in the URL.
func NewMQTTPublisher(brokerURL, clientID string, logger *logrus.Logger) (*MQTTPublisher, error) {
	opts, err := clientOptions(brokerURL, clientID)
	if err != nil {
		return nil, err
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.WithError(err).Warn("MQTT connection lost")
	})
	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		logger.Debug("MQTT reconnecting...")
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Debug("MQTT connected")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(config.MQTTTimeout) {
		return nil, fmt.Errorf("connect to MQTT broker timed out after %s", config.MQTTTimeout)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	logger.WithFields(logrus.Fields{
		"broker":    cleanURL(brokerURL),
		"client_id": clientID,
	}).Info("MQTT client connected")

	return &MQTTPublisher{client: client, logger: logger}, nil
}

// Publish sends the message with QoS 1, not retained.
func (p *MQTTPublisher) Publish(ctx context.Context, payload calibration.Payload) error {
	if payload.Topic == "" {
		return errors.New("empty topic")
	}

	token := p.client.Publish(payload.Topic, 1, false, payload.Message)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publish to topic %s: %w", payload.Topic, ctx.Err())
	case <-time.After(config.MQTTTimeout):
		return fmt.Errorf("publish to topic %s timed out after %s", payload.Topic, config.MQTTTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", payload.Topic, err)
	}

	p.logger.WithFields(logrus.Fields{
		"topic": payload.Topic,
		"size":  len(payload.Message),
	}).Debug("Published MQTT message")
	return nil
}

func (p *MQTTPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
	p.logger.Debug("MQTT client disconnected")
}

func clientOptions(brokerURL, clientID string) (*mqtt.ClientOptions, error) {
	parsed, err := url.Parse(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT URL: %w", err)
	}

	opts := mqtt.NewClientOptions()
	switch parsed.Scheme {
	case "ws":
		opts.AddBroker(brokerURL)
	case "wss":
		opts.AddBroker(brokerURL)
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	case "mqtt":
		opts.AddBroker(strings.Replace(brokerURL, "mqtt://", "tcp://", 1))
	case "mqtts":
		opts.AddBroker(strings.Replace(brokerURL, "mqtts://", "ssl://", 1))
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	default:
		return nil, fmt.Errorf("unsupported protocol scheme: %s (supported: ws, wss, mqtt, mqtts)", parsed.Scheme)
	}

	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetConnectTimeout(config.MQTTTimeout)
	opts.SetMaxReconnectInterval(10 * time.Second)

	if parsed.User != nil {
		opts.SetUsername(parsed.User.Username())
		if pw, ok := parsed.User.Password(); ok {
			opts.SetPassword(pw)
		}
	}
	return opts, nil
}

// cleanURL removes credentials from URL for logging
func cleanURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if parsed.User != nil {
		parsed.User = url.UserPassword("***", "***")
	}
	return parsed.String()
}
