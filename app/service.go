package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mvchuu/planetary-rover/config"
	coremetrics "github.com/mvchuu/planetary-rover/core/metrics"
	"github.com/mvchuu/planetary-rover/core/power"
	"github.com/mvchuu/planetary-rover/infra/logger"
	"github.com/mvchuu/planetary-rover/infra/metrics"
	"github.com/mvchuu/planetary-rover/infra/mqtt"
	"github.com/mvchuu/planetary-rover/internal/eventbus"
)

// Service wires the power manager to its MQTT, metrics and logging adapters
// and drives the management and prediction ticks.
type Service struct {
	Manager *power.Manager

	client      *mqtt.PahoClient
	bus         eventbus.EventBus
	log         logger.Logger
	powerCfg    power.Config
	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics, logger.New("influx-sink")))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	manager, err := power.NewManager(cfg.Power, nil, sink, bus, logger.New("power-manager"))
	if err != nil {
		return nil, fmt.Errorf("power manager: %w", err)
	}

	client, err := mqtt.NewPahoClient(cfg.MQTT, manager, logger.New("mqtt-client"))
	if err != nil {
		return nil, fmt.Errorf("mqtt client: %w", err)
	}
	manager.SetReporter(client)

	return &Service{
		Manager:     manager,
		client:      client,
		bus:         bus,
		log:         logg,
		powerCfg:    cfg.Power,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run drives the tick loop until the context is canceled. Both tickers fire
// on the same goroutine, so a slow tick delays the next one instead of
// overlapping it.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	s.log.Infof("rover power management started")
	management := time.NewTicker(s.powerCfg.ManagementInterval())
	defer management.Stop()
	prediction := time.NewTicker(s.powerCfg.PredictionInterval())
	defer prediction.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-management.C:
			s.Manager.ManagementTick()
		case <-prediction.C:
			s.Manager.PredictionTick()
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.client.Close()
	s.bus.Close()
	return nil
}
