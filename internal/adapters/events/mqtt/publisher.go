package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

const (
	EventItemSaved = "item_saved"

	qosAtLeastOnce = 1
	connectTimeout = 5 * time.Second
	publishTimeout = 2 * time.Second
	disconnectWait = 250
)

var (
	ErrNotConnected   = errors.New("mqtt not connected")
	ErrPublishTimeout = errors.New("mqtt publish timed out")
)

type Config struct {
	Broker   string
	Topic    string
	ClientID string
	Logger   *observability.Logger
}

// client is the part of paho.Client the publisher uses.
type client interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// Publisher announces every item saved to the wardrobe on an MQTT topic.
type Publisher struct {
	cfg       Config
	log       *observability.Logger
	client    client
	published atomic.Uint64
	failed    atomic.Uint64
}

var _ ports.ItemSavedListener = (*Publisher)(nil)

type ItemSavedEvent struct {
	Event      string     `json:"event"`
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Color      string     `json:"color"`
	ClassID    int        `json:"class_id"`
	BBox       [4]float64 `json:"bbox"`
	AddedOn    time.Time  `json:"added_on"`
}

// Connect dials the broker with automatic reconnection enabled.
func Connect(ctx context.Context, cfg Config) (*Publisher, error) {
	log := cfg.Logger
	if log == nil {
		log = observability.NewNop()
	}
	log = log.With("component", "mqtt", "broker", cfg.Broker)

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.OnConnect = func(paho.Client) {
		log.Info("mqtt connection established", "client_id", cfg.ClientID)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Warn("mqtt connection lost, will auto-reconnect", "error", err)
	}

	c := paho.NewClient(opts)
	token := c.Connect()

	timeout := connectTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if !token.WaitTimeout(timeout) {
		c.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broker, context.DeadlineExceeded)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broker, err)
	}

	return newPublisher(c, cfg, log), nil
}

func newPublisher(c client, cfg Config, log *observability.Logger) *Publisher {
	if log == nil {
		log = observability.NewNop()
	}
	return &Publisher{cfg: cfg, log: log, client: c}
}

func (p *Publisher) OnItemSaved(_ context.Context, item domain.Item) error {
	if !p.client.IsConnected() {
		p.failed.Add(1)
		return ErrNotConnected
	}

	payload, err := Payload(item)
	if err != nil {
		p.failed.Add(1)
		return err
	}

	token := p.client.Publish(p.cfg.Topic, qosAtLeastOnce, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		p.failed.Add(1)
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		p.failed.Add(1)
		return fmt.Errorf("mqtt publish: %w", err)
	}

	p.published.Add(1)
	p.log.Debug("item event published", "topic", p.cfg.Topic, "label", item.Label, "size", len(payload))
	return nil
}

// Stats returns how many events were published and how many failed.
func (p *Publisher) Stats() (published, failed uint64) {
	return p.published.Load(), p.failed.Load()
}

func (p *Publisher) Close() error {
	p.client.Disconnect(disconnectWait)
	return nil
}

func Payload(item domain.Item) ([]byte, error) {
	payload, err := json.Marshal(ItemSavedEvent{
		Event:      EventItemSaved,
		ID:         item.ID,
		Label:      item.DisplayLabel(),
		Confidence: item.Confidence,
		Color:      item.Color,
		ClassID:    item.ClassID,
		BBox:       [4]float64{item.BBox.X1, item.BBox.Y1, item.BBox.X2, item.BBox.Y2},
		AddedOn:    item.AddedOn,
	})
	if err != nil {
		return nil, fmt.Errorf("encode item event: %w", err)
	}

	return payload, nil
}
