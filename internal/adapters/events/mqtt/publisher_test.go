package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mira/internal/domain"
)

type fakeToken struct {
	done     bool
	err      error
	finished chan struct{}
}

func newFakeToken(done bool, err error) *fakeToken {
	ch := make(chan struct{})
	if done {
		close(ch)
	}
	return &fakeToken{done: done, err: err, finished: ch}
}

func (t *fakeToken) Wait() bool                     { return t.done }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Done() <-chan struct{}          { return t.finished }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	connected    bool
	token        *fakeToken
	messages     []published
	disconnected bool
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	c.messages = append(c.messages, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func testItem() domain.Item {
	return domain.Item{
		ID:         "item-1",
		Label:      "tie",
		Confidence: 0.87,
		Color:      "navy",
		ClassID:    27,
		BBox:       domain.BBox{X1: 1, Y1: 2, X2: 3, Y2: 4},
		AddedOn:    time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
	}
}

func TestPublisherPublishesItemEvent(t *testing.T) {
	fc := &fakeClient{connected: true, token: newFakeToken(true, nil)}
	p := newPublisher(fc, Config{Topic: "mira/wardrobe/items"}, nil)

	require.NoError(t, p.OnItemSaved(context.Background(), testItem()))

	require.Len(t, fc.messages, 1)
	msg := fc.messages[0]
	assert.Equal(t, "mira/wardrobe/items", msg.topic)
	assert.Equal(t, byte(1), msg.qos)

	var event ItemSavedEvent
	require.NoError(t, json.Unmarshal(msg.payload, &event))
	assert.Equal(t, EventItemSaved, event.Event)
	assert.Equal(t, "tie", event.Label)
	assert.Equal(t, "navy", event.Color)
	assert.Equal(t, [4]float64{1, 2, 3, 4}, event.BBox)

	sent, failed := p.Stats()
	assert.Equal(t, uint64(1), sent)
	assert.Zero(t, failed)
}

func TestPublisherRequiresConnection(t *testing.T) {
	fc := &fakeClient{token: newFakeToken(true, nil)}
	p := newPublisher(fc, Config{Topic: "t"}, nil)

	err := p.OnItemSaved(context.Background(), testItem())

	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Empty(t, fc.messages)
}

func TestPublisherReportsTimeoutAndErrors(t *testing.T) {
	fc := &fakeClient{connected: true, token: newFakeToken(false, nil)}
	p := newPublisher(fc, Config{Topic: "t"}, nil)
	assert.ErrorIs(t, p.OnItemSaved(context.Background(), testItem()), ErrPublishTimeout)

	boom := errors.New("broker said no")
	fc.token = newFakeToken(true, boom)
	assert.ErrorIs(t, p.OnItemSaved(context.Background(), testItem()), boom)

	_, failed := p.Stats()
	assert.Equal(t, uint64(2), failed)
}

func TestPayloadUsesDisplayLabel(t *testing.T) {
	item := testItem()
	item.Label = " "

	payload, err := Payload(item)

	require.NoError(t, err)
	assert.Contains(t, string(payload), `"label":"unknown item"`)
}

func TestCloseDisconnects(t *testing.T) {
	fc := &fakeClient{}
	p := newPublisher(fc, Config{}, nil)

	require.NoError(t, p.Close())
	assert.True(t, fc.disconnected)
}
