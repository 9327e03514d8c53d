package mqtt

import (
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvchuu/planetary-rover/core/logger"
)

type mockToken struct {
	err error
}

func (t *mockToken) Wait() bool                       { return true }
func (t *mockToken) WaitTimeout(_ time.Duration) bool { return true }
func (t *mockToken) Error() error                     { return t.err }
func (t *mockToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type mockClient struct {
	mu           sync.Mutex
	connected    bool
	disconnected bool
	published    map[string][][]byte
	failures     int
}

func newMockClient() *mockClient {
	return &mockClient{connected: true, published: make(map[string][][]byte)}
}

func (m *mockClient) IsConnected() bool { return m.connected }
func (m *mockClient) Connect() paho.Token {
	m.connected = true
	return &mockToken{}
}

func (m *mockClient) Disconnect(quiesce uint) {
	m.disconnected = true
	m.connected = false
}

func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return &mockToken{err: errors.New("publish failed")}
	}
	m.published[topic] = append(m.published[topic], payload.([]byte))
	return &mockToken{}
}

func (m *mockClient) Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token {
	return &mockToken{}
}

type mockMessage struct {
	topic   string
	payload []byte
}

func (m *mockMessage) Duplicate() bool   { return false }
func (m *mockMessage) Qos() byte         { return 0 }
func (m *mockMessage) Retained() bool    { return false }
func (m *mockMessage) Topic() string     { return m.topic }
func (m *mockMessage) MessageID() uint16 { return 0 }
func (m *mockMessage) Payload() []byte   { return m.payload }
func (m *mockMessage) Ack()              {}

type recordingSink struct {
	voltages []float64
	solar    []float64
	motion   [][2]float64
}

func (r *recordingSink) UpdateBatteryVoltage(v float64) { r.voltages = append(r.voltages, v) }
func (r *recordingSink) UpdateSolarPower(w float64)     { r.solar = append(r.solar, w) }
func (r *recordingSink) UpdateMotionCommand(x, z float64) {
	r.motion = append(r.motion, [2]float64{x, z})
}

func newTestClient(sink TelemetrySink) (*PahoClient, *mockClient) {
	mc := newMockClient()
	cfg := Config{}
	cfg.SetDefaults()
	return &PahoClient{
		cli:     mc,
		sink:    sink,
		topics:  cfg.Topics,
		log:     logger.NopLogger{},
		backoff: time.Millisecond,
	}, mc
}

func TestHandlersDecodeTelemetry(t *testing.T) {
	sink := &recordingSink{}
	client, _ := newTestClient(sink)

	client.onBatteryVoltage(nil, &mockMessage{payload: []byte(`{"voltage": 26.7}`)})
	client.onSolarPower(nil, &mockMessage{payload: []byte(`{"watts": 95.5}`)})
	client.onMotionCommand(nil, &mockMessage{payload: []byte(`{"linear_x": 0.5, "angular_z": -0.2}`)})

	require.Len(t, sink.voltages, 1)
	assert.Equal(t, 26.7, sink.voltages[0])
	require.Len(t, sink.solar, 1)
	assert.Equal(t, 95.5, sink.solar[0])
	require.Len(t, sink.motion, 1)
	assert.Equal(t, [2]float64{0.5, -0.2}, sink.motion[0])
}

func TestHandlersIgnoreMalformedPayloads(t *testing.T) {
	sink := &recordingSink{}
	client, _ := newTestClient(sink)

	client.onBatteryVoltage(nil, &mockMessage{payload: []byte(`not json`)})
	client.onSolarPower(nil, &mockMessage{payload: []byte(`{`)})
	client.onMotionCommand(nil, &mockMessage{payload: []byte(``)})

	assert.Empty(t, sink.voltages)
	assert.Empty(t, sink.solar)
	assert.Empty(t, sink.motion)
}

func TestReportModeChangePublishesLabel(t *testing.T) {
	client, mc := newTestClient(&recordingSink{})

	require.NoError(t, client.ReportModeChange("NORMAL", "EMERGENCY"))
	msgs := mc.published["power/mode"]
	require.Len(t, msgs, 1)
	assert.Equal(t, "EMERGENCY", string(msgs[0]))
}

func TestReportSoCPublishesJSON(t *testing.T) {
	client, mc := newTestClient(&recordingSink{})

	require.NoError(t, client.ReportSoC(82.5))
	msgs := mc.published["power/battery_soc"]
	require.Len(t, msgs, 1)
	assert.Contains(t, string(msgs[0]), `"soc":82.5`)
}

func TestPublishRetriesOnFailure(t *testing.T) {
	client, mc := newTestClient(&recordingSink{})
	mc.failures = 2

	require.NoError(t, client.ReportAvailablePower(42))
	msgs := mc.published["power/available_power"]
	require.Len(t, msgs, 1)
	assert.Contains(t, string(msgs[0]), `"available_power_w":42`)
}

func TestPublishGivesUpAfterMaxRetries(t *testing.T) {
	client, mc := newTestClient(&recordingSink{})
	client.maxRetries = 1
	mc.failures = 10

	assert.Error(t, client.ReportForecast("line"))
}

func TestCloseDisconnects(t *testing.T) {
	client, mc := newTestClient(&recordingSink{})
	client.Close()
	assert.True(t, mc.disconnected)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	assert.Equal(t, "sensors/battery_voltage", cfg.Topics.BatteryVoltage)
	assert.Equal(t, "cmd_vel", cfg.Topics.MotionCommand)
	assert.Equal(t, "power/mode", cfg.Topics.Mode)
	assert.NotEmpty(t, cfg.ClientID)
}
