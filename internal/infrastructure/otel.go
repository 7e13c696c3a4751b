package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const (
	// ServiceName identifies this service in metrics.
	ServiceName = "liqreport"
	// MeterName is the instrumentation scope.
	MeterName = "liqreport"
)

// OTelProviders holds the metrics provider and its Prometheus registry. The
// registry backs the /metrics endpoint.
type OTelProviders struct {
	MeterProvider *sdkmetric.MeterProvider
	Meter         metric.Meter
	Registry      *promclient.Registry
	Logger        *slog.Logger
}

// InitializeOTel sets up the OpenTelemetry meter provider with a Prometheus
// exporter. Tracing is not wired; the trace id in logs comes from request
// IDs.
func InitializeOTel(version, environment string, logger *slog.Logger) (*OTelProviders, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironmentName(environment),
			attribute.String("service.instance.id", instanceID()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	logger.Info("metrics initialized", slog.String("exporter", "prometheus"))

	return &OTelProviders{
		MeterProvider: mp,
		Meter:         mp.Meter(MeterName, metric.WithInstrumentationVersion(version)),
		Registry:      registry,
		Logger:        logger,
	}, nil
}

// Shutdown flushes and stops the meter provider.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p.MeterProvider == nil {
		return nil
	}
	if err := p.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}

func instanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}
