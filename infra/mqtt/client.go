package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/mvchuu/planetary-rover/core/logger"
)

// Topics defines the telemetry and reporting topic layout. The defaults
// mirror the rover's onboard topic names.
type Topics struct {
	BatteryVoltage string `json:"battery_voltage"`
	SolarPower     string `json:"solar_power"`
	MotionCommand  string `json:"motion_command"`
	Mode           string `json:"mode"`
	BatterySoC     string `json:"battery_soc"`
	AvailablePower string `json:"available_power"`
	Forecast       string `json:"forecast"`
}

// SetDefaults applies the onboard topic layout.
func (t *Topics) SetDefaults() {
	if t.BatteryVoltage == "" {
		t.BatteryVoltage = "sensors/battery_voltage"
	}
	if t.SolarPower == "" {
		t.SolarPower = "sensors/solar_power"
	}
	if t.MotionCommand == "" {
		t.MotionCommand = "cmd_vel"
	}
	if t.Mode == "" {
		t.Mode = "power/mode"
	}
	if t.BatterySoC == "" {
		t.BatterySoC = "power/battery_soc"
	}
	if t.AvailablePower == "" {
		t.AvailablePower = "power/available_power"
	}
	if t.Forecast == "" {
		t.Forecast = "power/prediction"
	}
}

// Config defines the connection parameters for the Paho MQTT adapter.
type Config struct {
	Broker     string          `json:"broker"`
	ClientID   string          `json:"client_id"`
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	UseTLS     bool            `json:"use_tls"`
	ClientCert string          `json:"client_cert"`
	ClientKey  string          `json:"client_key"`
	CABundle   string          `json:"ca_bundle"`
	QoS        map[string]byte `json:"qos"`
	LWTTopic   string          `json:"lwt_topic"`
	LWTPayload string          `json:"lwt_payload"`
	LWTQoS     byte            `json:"lwt_qos"`
	LWTRetain  bool            `json:"lwt_retain"`
	MaxRetries int             `json:"max_retries"`
	BackoffMS  int             `json:"backoff_ms"`
	Topics     Topics          `json:"topics"`
	TLSConfig  *tls.Config     `json:"-"`
}

// SetDefaults fills in a generated client id and the default topic layout.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "rover-power-" + uuid.NewString()[:8]
	}
	c.Topics.SetDefaults()
}

// TelemetrySink receives decoded telemetry samples. It is implemented by the
// power manager.
type TelemetrySink interface {
	UpdateBatteryVoltage(volts float64)
	UpdateSolarPower(watts float64)
	UpdateMotionCommand(linearX, angularZ float64)
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoClient bridges the broker and the power engine: it feeds decoded
// telemetry into a TelemetrySink and implements report.Reporter for the
// outbound topics.
type PahoClient struct {
	cli        pahoClient
	sink       TelemetrySink
	topics     Topics
	qos        map[string]byte
	log        logger.Logger
	maxRetries int
	backoff    time.Duration
}

// NewPahoClient connects to the MQTT broker and subscribes to the telemetry
// topics on every (re)connect.
func NewPahoClient(cfg Config, sink TelemetrySink, log logger.Logger) (*PahoClient, error) {
	if sink == nil {
		return nil, fmt.Errorf("mqtt: nil telemetry sink provided to NewPahoClient")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	pc := &PahoClient{
		sink:       sink,
		topics:     cfg.Topics,
		qos:        cfg.QoS,
		log:        log,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		pc.subscribe(c, cfg.Topics.BatteryVoltage, pc.onBatteryVoltage)
		pc.subscribe(c, cfg.Topics.SolarPower, pc.onSolarPower)
		pc.subscribe(c, cfg.Topics.MotionCommand, pc.onMotionCommand)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	pc.cli = c
	return pc, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
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
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
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

func (p *PahoClient) subscribe(c paho.Client, topic string, handler paho.MessageHandler) {
	qos := byte(0)
	if q, ok := p.qos["telemetry"]; ok {
		qos = q
	}
	if token := c.Subscribe(topic, qos, handler); token.Wait() && token.Error() != nil {
		p.log.Errorf("subscribe %s: %v", topic, token.Error())
	}
}

func (p *PahoClient) onBatteryVoltage(_ paho.Client, msg paho.Message) {
	var m struct {
		Voltage float64 `json:"voltage"`
	}
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		p.log.Errorf("failed to decode battery sample: %v", err)
		return
	}
	p.sink.UpdateBatteryVoltage(m.Voltage)
}

func (p *PahoClient) onSolarPower(_ paho.Client, msg paho.Message) {
	var m struct {
		Watts float64 `json:"watts"`
	}
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		p.log.Errorf("failed to decode solar sample: %v", err)
		return
	}
	p.sink.UpdateSolarPower(m.Watts)
}

func (p *PahoClient) onMotionCommand(_ paho.Client, msg paho.Message) {
	var m struct {
		LinearX  float64 `json:"linear_x"`
		AngularZ float64 `json:"angular_z"`
	}
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		p.log.Errorf("failed to decode motion command: %v", err)
		return
	}
	p.sink.UpdateMotionCommand(m.LinearX, m.AngularZ)
}

// ReportModeChange publishes the new mode label. Only the label goes on the
// wire; the transition pair stays in logs and metrics.
func (p *PahoClient) ReportModeChange(oldMode, newMode string) error {
	return p.publish(p.topics.Mode, []byte(newMode))
}

// ReportSoC publishes the battery state of charge.
func (p *PahoClient) ReportSoC(soc float64) error {
	payload, err := json.Marshal(struct {
		SoC       float64 `json:"soc"`
		Timestamp int64   `json:"timestamp"`
	}{SoC: soc, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return err
	}
	return p.publish(p.topics.BatterySoC, payload)
}

// ReportAvailablePower publishes the power budget in watts.
func (p *PahoClient) ReportAvailablePower(watts float64) error {
	payload, err := json.Marshal(struct {
		AvailablePowerW float64 `json:"available_power_w"`
		Timestamp       int64   `json:"timestamp"`
	}{AvailablePowerW: watts, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return err
	}
	return p.publish(p.topics.AvailablePower, payload)
}

// ReportForecast publishes the human-readable forecast line.
func (p *PahoClient) ReportForecast(line string) error {
	return p.publish(p.topics.Forecast, []byte(line))
}

func (p *PahoClient) publish(topic string, payload []byte) error {
	qos := byte(0)
	if q, ok := p.qos["report"]; ok {
		qos = q
	}
	maxRetries := p.maxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	backoff := p.backoff
	if backoff <= 0 {
		backoff = 100 * time.Millisecond
	}
	var publishErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		token := p.cli.Publish(topic, qos, false, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			return nil
		}
		p.log.Errorf("publish attempt %d to %s failed: %v", attempt+1, topic, publishErr)
		time.Sleep(backoff * time.Duration(1<<attempt))
	}
	return publishErr
}

// Close disconnects from the broker.
func (p *PahoClient) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
