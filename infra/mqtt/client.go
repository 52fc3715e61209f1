// Package mqtt exposes the planner over an MQTT broker: planning requests
// arrive on a request topic and each result is published on a per-request
// result topic.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/tanklogix/loadplan/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled      bool        `json:"enabled"`
	Broker       string      `json:"broker"`
	ClientID     string      `json:"client_id"`
	Username     string      `json:"username"`
	Password     string      `json:"password"`
	RequestTopic string      `json:"request_topic"`
	ResultPrefix string      `json:"result_prefix"`
	QoS          byte        `json:"qos"`
	UseTLS       bool        `json:"use_tls"`
	ClientCert   string      `json:"client_cert"`
	ClientKey    string      `json:"client_key"`
	CABundle     string      `json:"ca_bundle"`
	TLSConfig    *tls.Config `json:"-"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "loadplan"
	}
	if c.RequestTopic == "" {
		c.RequestTopic = "loadplan/request"
	}
	if c.ResultPrefix == "" {
		c.ResultPrefix = "loadplan/result"
	}
}

// Validate checks mandatory fields when the listener is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config, log logger.Logger) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}
