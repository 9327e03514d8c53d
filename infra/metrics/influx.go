package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mvchuu/planetary-rover/core/logger"
	coremetrics "github.com/mvchuu/planetary-rover/core/metrics"
)

// InfluxSink writes power engine observations to an InfluxDB instance using
// the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string, log logger.Logger) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	if log == nil {
		log = logger.NopLogger{}
	}
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      log,
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config, log logger.Logger) coremetrics.Sink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket, log)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordEnergySample writes the tick snapshot as line protocol points.
func (s *InfluxSink) RecordEnergySample(sample coremetrics.EnergySample) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("energy_state").
		AddTag("mode", sample.Mode).
		AddField("soc", round3(sample.SoC)).
		AddField("voltage", round3(sample.Voltage)).
		AddField("solar_generation_w", round3(sample.SolarGeneration)).
		AddField("power_consumption_w", round3(sample.PowerConsumption)).
		AddField("available_power_w", round3(sample.AvailablePower)).
		SetTime(sample.Time)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}
	for _, c := range sample.Components {
		cp := write.NewPointWithMeasurement("component_power").
			AddTag("component", c.Name).
			AddTag("priority", c.Priority).
			AddField("power_w", round3(c.PowerW)).
			AddField("enabled", c.Enabled).
			SetTime(sample.Time)
		if err := s.writeAPI.WritePoint(ctx, cp); err != nil {
			return err
		}
	}
	return nil
}

// RecordModeChange writes the transition as a point.
func (s *InfluxSink) RecordModeChange(ev coremetrics.ModeChange) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("mode_change").
		AddTag("from", ev.From).
		AddTag("to", ev.To).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordForecast writes the forecast as a point.
func (s *InfluxSink) RecordForecast(ev coremetrics.Forecast) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sol_forecast").
		AddTag("mode", ev.Mode).
		AddField("predicted_wh", round3(ev.PredictedWh)).
		AddField("soc", round3(ev.SoC)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
