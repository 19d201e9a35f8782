// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package history

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
	"golang.org/x/time/rate"

	"github.com/tomtom215/halaqa-discovery/internal/logging"
	"github.com/tomtom215/halaqa-discovery/internal/metrics"
)

// Topic is the in-process topic carrying history entries.
const Topic = "search.history"

// RecorderConfig configures a Recorder.
type RecorderConfig struct {
	// RatePerSecond caps accepted entries per second. Excess entries are
	// dropped. Default: 50.
	RatePerSecond float64

	// Burst is the limiter burst. Default: 100.
	Burst int

	// Buffer is the subscriber channel size. Default: 256.
	Buffer int64

	// WriteTimeout bounds one store write. Default: 2s.
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		RatePerSecond: 50,
		Burst:         100,
		Buffer:        256,
		WriteTimeout:  2 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c *RecorderConfig) Validate() error {
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("rate_per_second must be positive, got %f", c.RatePerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	if c.Buffer < 0 {
		return fmt.Errorf("buffer must be non-negative, got %d", c.Buffer)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive, got %v", c.WriteTimeout)
	}
	return nil
}

// Recorder accepts history entries without blocking and writes them to a
// Store from its Serve loop. It implements suture.Service.
type Recorder struct {
	store   Store
	config  RecorderConfig
	limiter *rate.Limiter
	logger  zerolog.Logger

	pubsub   *gochannel.GoChannel
	messages <-chan *message.Message
	cancel   context.CancelFunc

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewRecorder creates a recorder over store. The topic subscription is made
// here, so entries recorded before Serve starts are buffered.
//
//nolint:gocritic // hugeParam: logger is copied once at construction
func NewRecorder(store Store, cfg RecorderConfig, logger zerolog.Logger) (*Recorder, error) {
	if store == nil {
		return nil, fmt.Errorf("history store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recorder config: %w", err)
	}
	logger = logger.With().Str("component", "history").Logger()

	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: cfg.Buffer},
		logging.NewWatermillLogger(logger),
	)
	ctx, cancel := context.WithCancel(context.Background())
	messages, err := pubsub.Subscribe(ctx, Topic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe to %s: %w", Topic, err)
	}

	return &Recorder{
		store:    store,
		config:   cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:   logger,
		pubsub:   pubsub,
		messages: messages,
		cancel:   cancel,
	}, nil
}

// Record queues an entry. It never blocks: entries over the rate limit are
// dropped and store failures surface only in logs and metrics.
//
//nolint:gocritic // hugeParam: entries are small value types
func (r *Recorder) Record(_ context.Context, entry Entry) error {
	if r.closed.Load() {
		return ErrRecorderClosed
	}
	if Normalize(entry.Query) == "" {
		return nil
	}
	if !r.limiter.Allow() {
		metrics.RecordHistoryWrite("dropped")
		r.logger.Debug().Str("query", entry.Query).Msg("history write dropped by rate limit")
		return nil
	}
	if entry.SeenAt.IsZero() {
		entry.SeenAt = time.Now().UTC()
	}

	payload, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if entry.UserID != "" {
		msg.Metadata.Set("user_id", entry.UserID)
	}
	if err := r.pubsub.Publish(Topic, msg); err != nil {
		metrics.RecordHistoryWrite("dropped")
		r.logger.Debug().Err(err).Msg("history publish failed")
	}
	return nil
}

// Suggest delegates to the underlying store.
func (r *Recorder) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.store.Suggest(ctx, prefix, limit)
}

// Serve drains the topic into the store until ctx is done or the recorder
// is closed.
func (r *Recorder) Serve(ctx context.Context) error {
	r.logger.Info().Msg("history recorder started")
	defer r.logger.Info().Msg("history recorder stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-r.messages:
			if !ok {
				return suture.ErrDoNotRestart
			}
			r.handle(ctx, msg)
		}
	}
}

func (r *Recorder) handle(ctx context.Context, msg *message.Message) {
	// Best effort: every message is acked, a failed write is not retried.
	defer msg.Ack()

	var entry Entry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		metrics.RecordHistoryWrite("failed")
		r.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("undecodable history entry")
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, r.config.WriteTimeout)
	defer cancel()
	if err := r.store.Record(writeCtx, entry); err != nil {
		metrics.RecordHistoryWrite("failed")
		r.logger.Warn().Err(err).Str("query", entry.Query).Msg("history write failed")
		return
	}
	metrics.RecordHistoryWrite("written")
}

// String implements fmt.Stringer for suture logging.
func (r *Recorder) String() string {
	return "history-recorder"
}

// Close stops accepting entries and ends the subscription. Entries still
// buffered are discarded.
func (r *Recorder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		r.cancel()
		err = r.pubsub.Close()
	})
	return err
}
