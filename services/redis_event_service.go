package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/types"
)

const defaultPublishTimeout = 5 * time.Second

type eventMetrics struct {
	publishLatency prometheus.Histogram
	errorCount     prometheus.Counter
	eventCount     *prometheus.CounterVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *eventMetrics
)

// initEventMetrics registers publisher metrics once; promauto panics on
// duplicate registration, so all publisher instances share one set.
func initEventMetrics() *eventMetrics {
	metricsOnce.Do(func() {
		sharedMetrics = &eventMetrics{
			publishLatency: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "garagelog_event_publish_duration_seconds",
				Help:    "Time taken to publish change events",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			}),
			errorCount: promauto.NewCounter(prometheus.CounterOpts{
				Name: "garagelog_event_errors_total",
				Help: "Total number of event publish errors",
			}),
			eventCount: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "garagelog_events_published_total",
				Help: "Total number of change events published",
			}, []string{"event_type"}),
		}
	})
	return sharedMetrics
}

// RedisEventPublisher publishes change events to per-vehicle Redis channels.
// Realtime consumers (mobile clients via the Supabase edge, dashboards)
// subscribe to "vehicle:<id>".
type RedisEventPublisher struct {
	client         *redis.Client
	metrics        *eventMetrics
	publishTimeout time.Duration
}

var _ types.EventPublisher = (*RedisEventPublisher)(nil)

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		client:         client,
		metrics:        initEventMetrics(),
		publishTimeout: defaultPublishTimeout,
	}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, vehicleID string, event types.ChangeEvent) error {
	log := logger.GetLogger()

	startTime := time.Now()
	defer func() {
		p.metrics.publishLatency.Observe(time.Since(startTime).Seconds())
	}()

	if err := event.Validate(); err != nil {
		p.metrics.errorCount.Inc()
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.metrics.errorCount.Inc()
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	channel := "vehicle:" + vehicleID
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		p.metrics.errorCount.Inc()
		log.Errorw("Failed to publish event to Redis",
			"channel", channel,
			"eventType", event.Type,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.metrics.eventCount.WithLabelValues(string(event.Type)).Inc()
	log.Debugw("Published change event", "channel", channel, "eventType", event.Type)
	return nil
}
