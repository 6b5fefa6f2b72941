package trace

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Exporter string

const (
	ExporterNone   Exporter = "none"
	ExporterStdout Exporter = "stdout"
	ExporterOTLP   Exporter = "otlp"
)

type InitConfig struct {
	ServiceName   string
	Version       string
	Exporter      Exporter
	TraceEndpoint string // host:port of an OTLP gRPC collector
}

var provider *sdktrace.TracerProvider

func newExporter(ctx context.Context, conf *InitConfig) (sdktrace.SpanExporter, error) {
	switch conf.Exporter {
	case ExporterNone, "":
		return nil, nil
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
	case ExporterOTLP:
		if conf.TraceEndpoint == "" {
			return nil, fmt.Errorf("otlp trace exporter needs TRACE_TRACEENDPOINT")
		}
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(conf.TraceEndpoint),
			otlptracegrpc.WithInsecure())
	default:
		return nil, fmt.Errorf("unknown TRACE_EXPORTER %q", conf.Exporter)
	}
}

// InitTrace installs the global tracer provider and the W3C propagator.
// Spans are always sampled; with no exporter they only feed trace ids to
// the logs.
func InitTrace(ctx context.Context, conf *InitConfig) error {
	exp, err := newExporter(ctx, conf)
	if err != nil {
		logger.Errorf(ctx, "init trace exporter err: %+v", err)
		return err
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", conf.ServiceName),
			attribute.String("service.version", conf.Version),
		)),
	}
	if exp != nil {
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	provider = sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))
	return nil
}

// CloseTrace flushes pending spans.
func CloseTrace() {
	if provider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		logger.Errorf(ctx, "shutdown tracer provider err: %+v", err)
	}
	provider = nil
}
