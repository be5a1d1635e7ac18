package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/gridops/powerplan/core/model"
	"github.com/gridops/powerplan/infra/logger"
)

// Config defines the connection parameters for the plan publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "powerplan"
	}
	if c.Topic == "" {
		c.Topic = "powerplan/plans"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// pahoClient is the subset of the Paho client used by the publisher. It is
// narrowed so tests can substitute a fake.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PlanPublisher pushes computed production plans to an MQTT topic so
// downstream consumers (SCADA, aggregators) can pick them up.
type PlanPublisher struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

// planMessage is the wire format of a published plan.
type planMessage struct {
	RequestID  string               `json:"request_id"`
	LoadMW     float64              `json:"load_mw"`
	Plan       model.ProductionPlan `json:"plan"`
	ComputedAt time.Time            `json:"computed_at"`
}

// NewPlanPublisher connects to the MQTT broker described by the config.
func NewPlanPublisher(cfg Config) (*PlanPublisher, error) {
	log := logger.New("plan-publisher")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PlanPublisher{cli: c, topic: cfg.Topic, qos: cfg.QoS, retain: cfg.Retain, log: log}, nil
}

// PublishPlan sends the plan as JSON on the configured topic.
func (p *PlanPublisher) PublishPlan(requestID string, loadMW float64, plan model.ProductionPlan) error {
	msg := planMessage{RequestID: requestID, LoadMW: loadMW, Plan: plan, ComputedAt: time.Now().UTC()}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	token := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish plan: %w", token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *PlanPublisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
