// Package notify publishes congestion alerts over MQTT so downstream
// displays and bots can react to severe predictions. Publishing is
// best-effort; broker failures are logged and dropped.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/causewaylab/crossing/core/logger"
	coremetrics "github.com/causewaylab/crossing/core/metrics"
	"github.com/causewaylab/crossing/core/model"
	"github.com/causewaylab/crossing/internal/eventbus"
)

// Config defines the MQTT alert publisher settings.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "crossing-alerts"
	}
	if c.Topic == "" {
		c.Topic = "crossing/alerts"
	}
}

// Publisher publishes severe-congestion alerts.
type Publisher struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

// NewPublisher connects to the broker.
func NewPublisher(cfg Config, log logger.Logger) (*Publisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &Publisher{cli: cli, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

type alertMessage struct {
	Checkpoint       string    `json:"checkpoint"`
	Direction        string    `json:"direction"`
	Congestion       string    `json:"congestion_level"`
	PredictedMinutes float64   `json:"predicted_time_minutes"`
	Time             time.Time `json:"time"`
}

// publish sends one alert message; failures are logged and dropped.
func (p *Publisher) publish(ev coremetrics.PredictionEvent) {
	msg := alertMessage{
		Checkpoint:       ev.Checkpoint.String(),
		Direction:        ev.Direction.String(),
		Congestion:       ev.Congestion.String(),
		PredictedMinutes: ev.PredictedMinutes,
		Time:             ev.Time,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		p.log.Errorf("marshal alert: %v", err)
		return
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	if !tok.WaitTimeout(5 * time.Second) {
		p.log.Warnf("alert publish timeout")
		return
	}
	if err := tok.Error(); err != nil {
		p.log.Warnf("alert publish: %v", err)
	}
}

// Listen consumes prediction events from the bus and publishes alerts for
// severe congestion. It returns when the context is canceled or the bus
// closes.
func (p *Publisher) Listen(ctx context.Context, bus *eventbus.Bus[coremetrics.PredictionEvent]) {
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if ev.Congestion == model.CongestionSevere {
				p.publish(ev)
			}
		}
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}
