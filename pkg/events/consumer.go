package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/pkg/logger"
)

const (
	DefaultSubscriberMaxRetries = 3
	defaultRetryDelay           = 500 * time.Millisecond
	fetchBackoff                = time.Second
)

var ErrSubscriberClosed = errors.New("kafka subscriber is closed")

// Metadata describes where a consumed event came from.
type Metadata struct {
	EventID   string
	Source    string
	Partition int
	Offset    int64
}

type Handler func(ctx context.Context, event CatalogEvent, meta Metadata) error

type SubscriberConfig struct {
	Brokers []string
	Topic   string
	// GroupID enables committed offsets. Without it every run starts at
	// StartOffset.
	GroupID        string
	StartOffset    int64 // kafka.FirstOffset or kafka.LastOffset
	MaxRetries     int
	CommitInterval time.Duration
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSubscriber feeds catalog events from a topic to a Handler. A handler
// error is retried up to MaxRetries times; after that the event is skipped
// so one bad record cannot stall the partition.
type KafkaSubscriber struct {
	reader     messageReader
	handler    Handler
	commit     bool
	maxRetries int
	retryDelay time.Duration
	log        *logger.Logger
	closed     bool
	mu         sync.Mutex
}

// NewKafkaSubscriber builds a subscriber for cfg.Topic. With a GroupID the
// group coordinator assigns partitions and tracks offsets. Without one every
// partition of the topic gets its own reader positioned at StartOffset, and
// nothing is committed.
func NewKafkaSubscriber(ctx context.Context, cfg SubscriberConfig, handler Handler, log *logger.Logger) (*KafkaSubscriber, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("event handler cannot be nil")
	}

	var reader messageReader
	if cfg.GroupID != "" {
		reader = kafka.NewReader(readerConfig(cfg, log))
	} else {
		partitions, err := lookupPartitions(ctx, cfg.Brokers, cfg.Topic)
		if err != nil {
			return nil, err
		}
		reader, err = newPartitionReaders(cfg, partitions, log)
		if err != nil {
			return nil, err
		}
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	s := newKafkaSubscriber(reader, handler, log)
	s.commit = cfg.GroupID != ""
	s.maxRetries = maxRetries
	return s, nil
}

func startOffset(cfg SubscriberConfig) int64 {
	if cfg.StartOffset == 0 {
		return kafka.LastOffset
	}
	return cfg.StartOffset
}

func readerConfig(cfg SubscriberConfig, log *logger.Logger) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:         cfg.Brokers,
		Topic:           cfg.Topic,
		GroupID:         cfg.GroupID,
		StartOffset:     startOffset(cfg),
		CommitInterval:  cfg.CommitInterval,
		ReadLagInterval: -1,
		Logger:          kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("Kafka reader error", "detail", fmt.Sprintf(msg, args...))
		}),
	}
}

// lookupPartitions asks the first reachable broker for the topic's partitions.
func lookupPartitions(ctx context.Context, brokers []string, topic string) ([]int, error) {
	var lastErr error
	for _, broker := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		parts, err := conn.ReadPartitions(topic)
		_ = conn.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if len(parts) == 0 {
			return nil, fmt.Errorf("topic %s has no partitions", topic)
		}

		ids := make([]int, 0, len(parts))
		for _, p := range parts {
			ids = append(ids, p.ID)
		}
		sort.Ints(ids)
		return ids, nil
	}
	return nil, fmt.Errorf("failed to read partitions of %s: %w", topic, lastErr)
}

func newPartitionReaders(cfg SubscriberConfig, partitions []int, log *logger.Logger) (*fanIn, error) {
	offset := startOffset(cfg)
	readers := make([]messageReader, 0, len(partitions))
	for _, partition := range partitions {
		rc := readerConfig(cfg, log)
		rc.GroupID = ""
		rc.Partition = partition

		r := kafka.NewReader(rc)
		if err := r.SetOffset(offset); err != nil {
			_ = r.Close()
			for _, opened := range readers {
				_ = opened.Close()
			}
			return nil, fmt.Errorf("failed to position partition %d: %w", partition, err)
		}
		readers = append(readers, r)
	}
	return newFanIn(readers), nil
}

type fetchResult struct {
	msg kafka.Message
	err error
}

// fanIn merges several partition readers into one message stream. Readers
// are started on the first fetch.
type fanIn struct {
	readers []messageReader
	msgs    chan fetchResult
	start   sync.Once
	wg      sync.WaitGroup
	mu      sync.Mutex
	cancel  context.CancelFunc
	closed  bool
}

func newFanIn(readers []messageReader) *fanIn {
	return &fanIn{
		readers: readers,
		msgs:    make(chan fetchResult),
	}
}

func (f *fanIn) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.start.Do(f.run)

	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case res, ok := <-f.msgs:
		if !ok {
			return kafka.Message{}, io.EOF
		}
		return res.msg, res.err
	}
}

func (f *fanIn) run() {
	ctx, cancel := context.WithCancel(context.Background())

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		cancel()
		return
	}
	f.cancel = cancel
	f.wg.Add(len(f.readers))
	for _, r := range f.readers {
		go f.pump(ctx, r)
	}
}

func (f *fanIn) pump(ctx context.Context, r messageReader) {
	defer f.wg.Done()
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil && (ctx.Err() != nil || errors.Is(err, io.EOF)) {
			return
		}
		select {
		case f.msgs <- fetchResult{msg: msg, err: err}:
		case <-ctx.Done():
			return
		}
	}
}

// CommitMessages is a no-op: partition readers have no group to commit to.
func (f *fanIn) CommitMessages(context.Context, ...kafka.Message) error {
	return nil
}

func (f *fanIn) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	cancel := f.cancel
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var errs []error
	for _, r := range f.readers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	f.wg.Wait()
	close(f.msgs)
	return errors.Join(errs...)
}

func newKafkaSubscriber(r messageReader, handler Handler, log *logger.Logger) *KafkaSubscriber {
	return &KafkaSubscriber{
		reader:     r,
		handler:    handler,
		maxRetries: DefaultSubscriberMaxRetries,
		retryDelay: defaultRetryDelay,
		log:        log,
	}
}

// Run consumes until ctx is done or the subscriber is closed.
func (s *KafkaSubscriber) Run(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSubscriberClosed
	}

	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return ErrSubscriberClosed
			}
			s.log.Error("Failed to fetch catalog event", "error", err)
			if !sleep(ctx, fetchBackoff) {
				return ctx.Err()
			}
			continue
		}

		s.process(ctx, msg)

		if s.commit {
			if err := s.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				s.log.Error("Failed to commit catalog event offset",
					"partition", msg.Partition,
					"offset", msg.Offset,
					"error", err,
				)
			}
		}
	}
}

func (s *KafkaSubscriber) process(ctx context.Context, msg kafka.Message) {
	meta := Metadata{Partition: msg.Partition, Offset: msg.Offset}
	for _, h := range msg.Headers {
		switch h.Key {
		case HeaderEventID:
			meta.EventID = string(h.Value)
		case HeaderSource:
			meta.Source = string(h.Value)
		}
	}

	var event CatalogEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		s.log.Warn("Skipping malformed catalog event",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return
	}

	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 && !sleep(ctx, s.retryDelay*time.Duration(attempt)) {
			return
		}
		if err = s.handler(ctx, event, meta); err == nil {
			return
		}
		s.log.Warn("Catalog event handler failed",
			"event_type", event.Name(),
			"key", event.Key(),
			"attempt", attempt+1,
			"error", err,
		)
	}

	s.log.Error("Dropping catalog event after retries",
		"event_id", meta.EventID,
		"event_type", event.Name(),
		"key", event.Key(),
		"error", err,
	)
}

func (s *KafkaSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.reader.Close()
}

// sleep waits for d and reports false when ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
