package telemetry

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "business-finder"
	serviceVersion = "1.0.0"
)

// Telemetry OpenTelemetry 인스턴스
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter

	// Metrics
	SearchDuration metric.Float64Histogram
	SearchTotal    metric.Int64Counter
	SearchErrors   metric.Int64Counter
	PlacesFound    metric.Int64Counter
	PagesFetched   metric.Int64Counter
	GeocodeCalls   metric.Int64Counter
	DetailCalls    metric.Int64Counter
	DetailErrors   metric.Int64Counter
}

// New 새로운 Telemetry 인스턴스 생성
// OTLP 엔드포인트가 없으면 no-op 인스턴스를 반환
func New(ctx context.Context) (*Telemetry, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return newNoOpTelemetry()
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("environment", getEnv("ENVIRONMENT", "production")),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter),
	)
	otel.SetTracerProvider(tracerProvider)

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second))),
	)
	otel.SetMeterProvider(meterProvider)

	t := &Telemetry{
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
		tracer:         tracerProvider.Tracer(serviceName),
		meter:          meterProvider.Meter(serviceName),
	}

	if err := t.registerMetrics(); err != nil {
		return nil, err
	}

	return t, nil
}

// registerMetrics 메트릭 등록
func (t *Telemetry) registerMetrics() error {
	var err error

	t.SearchDuration, err = t.meter.Float64Histogram(
		"finder.search.duration",
		metric.WithDescription("Duration of search pipelines in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	t.SearchTotal, err = t.meter.Int64Counter(
		"finder.search.total",
		metric.WithDescription("Total number of search pipelines started"),
	)
	if err != nil {
		return err
	}

	t.SearchErrors, err = t.meter.Int64Counter(
		"finder.search.errors",
		metric.WithDescription("Total number of failed search pipelines"),
	)
	if err != nil {
		return err
	}

	t.PlacesFound, err = t.meter.Int64Counter(
		"finder.places.found",
		metric.WithDescription("Total number of places returned after filtering"),
	)
	if err != nil {
		return err
	}

	t.PagesFetched, err = t.meter.Int64Counter(
		"finder.places.pages",
		metric.WithDescription("Total number of result pages fetched"),
	)
	if err != nil {
		return err
	}

	t.GeocodeCalls, err = t.meter.Int64Counter(
		"finder.geocode.calls",
		metric.WithDescription("Total number of geocoding calls"),
	)
	if err != nil {
		return err
	}

	t.DetailCalls, err = t.meter.Int64Counter(
		"finder.detail.calls",
		metric.WithDescription("Total number of place detail lookups"),
	)
	if err != nil {
		return err
	}

	t.DetailErrors, err = t.meter.Int64Counter(
		"finder.detail.errors",
		metric.WithDescription("Total number of failed place detail lookups"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer
func (t *Telemetry) Tracer() trace.Tracer {
	return t.tracer
}

// StartSpan 새로운 span 시작
func (t *Telemetry) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// RecordSearchDuration 검색 소요시간 기록
func (t *Telemetry) RecordSearchDuration(ctx context.Context, duration time.Duration, entry string) {
	t.SearchDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String("entry", entry)),
	)
}

// IncrementSearchTotal 검색 횟수 증가
func (t *Telemetry) IncrementSearchTotal(ctx context.Context, entry string) {
	t.SearchTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("entry", entry)),
	)
}

// IncrementSearchErrors 검색 실패 횟수 증가
func (t *Telemetry) IncrementSearchErrors(ctx context.Context, entry string) {
	t.SearchErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("entry", entry)),
	)
}

// AddPlacesFound 결과 개수 추가
func (t *Telemetry) AddPlacesFound(ctx context.Context, count int64) {
	t.PlacesFound.Add(ctx, count)
}

// AddPagesFetched 페이지 fetch 개수 추가
func (t *Telemetry) AddPagesFetched(ctx context.Context, count int64, kind string) {
	t.PagesFetched.Add(ctx, count,
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}

// IncrementGeocodeCalls geocode 호출 횟수 증가
func (t *Telemetry) IncrementGeocodeCalls(ctx context.Context) {
	t.GeocodeCalls.Add(ctx, 1)
}

// RecordDetailStats 상세 조회 통계 기록
func (t *Telemetry) RecordDetailStats(ctx context.Context, calls, errors int64) {
	t.DetailCalls.Add(ctx, calls)
	t.DetailErrors.Add(ctx, errors)
}

// Shutdown 텔레메트리 종료
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// newNoOpTelemetry no-op 텔레메트리 생성
func newNoOpTelemetry() (*Telemetry, error) {
	t := &Telemetry{
		tracer: otel.Tracer(serviceName),
		meter:  otel.Meter(serviceName),
	}

	_ = t.registerMetrics()

	return t, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
