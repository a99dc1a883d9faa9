package otel

import (
	"context"
	"parkflow/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

// Otel opens one span per unit of work. Scope names group spans by layer
// (handler, service, repository, cache).
type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
}

type tracing struct {
	provider oteltrace.TracerProvider
}

func (t *tracing) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := t.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// NewWithProvider builds an Otel on top of an existing provider.
func NewWithProvider(provider oteltrace.TracerProvider) Otel {
	return &tracing{provider: provider}
}

// New exports spans over OTLP/gRPC. Without an endpoint spans are dropped.
func New(cfg *config.Config) Otel {
	endpoint := cfg.External.Otel.Endpoint
	if endpoint == "" {
		log.Info().Msg("otel endpoint not set, tracing disabled")

		return NewWithProvider(noop.NewTracerProvider())
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Str("endpoint", endpoint).Msg("failed to create otlp exporter")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.External.Otel.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.App.Name),
			semconv.DeploymentEnvironmentKey.String(cfg.Server.Env),
		)),
	)

	otel.SetTracerProvider(provider)

	log.Info().Str("endpoint", endpoint).Float64("sampleRatio", cfg.External.Otel.SampleRatio).Msg("otel tracing enabled")

	return NewWithProvider(provider)
}
