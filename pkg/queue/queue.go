package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	applogger "LiskPredict/pkg/logger"
)

type QueueService interface {
	PublishMessage(ctx context.Context, msgType string, payload interface{}) error
}

// QueueConfig contains the configuration for the queue
type QueueConfig struct {
	Workers    int           // number of workers
	QueueSize  int           // size of the queue
	RetryLimit int           // number of maximum retries
	RetryDelay time.Duration // time delay between retries
}

// Message represents a message in the queue
type Message struct {
	Type      string
	Payload   interface{}
	Attempts  int
	Timestamp time.Time
}

// Queue is an in-process worker queue that dispatches messages to registered
// jobs by message type. Publishing never blocks request paths: a full queue
// returns an error instead of waiting.
type Queue struct {
	cfg      QueueConfig
	logger   *applogger.Logger
	jobs     map[string][]Job
	msgChan  chan *Message
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

// New creates a queue and starts its workers.
func New(cfg QueueConfig, l *applogger.Logger) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 100 * time.Millisecond
	}

	q := &Queue{
		cfg:     cfg,
		logger:  l,
		jobs:    make(map[string][]Job),
		msgChan: make(chan *Message, cfg.QueueSize),
	}

	for i := 0; i < cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}

	return q
}

// Register attaches a job to its message type. Must be called before the
// first PublishMessage for that type.
func (q *Queue) Register(job Job) {
	q.jobs[job.Type()] = append(q.jobs[job.Type()], job)
}

// PublishMessage enqueues a payload for async processing. The read lock
// pins msgChan open for the duration of the send, so a concurrent Close
// cannot close it under a publisher.
func (q *Queue) PublishMessage(_ context.Context, msgType string, payload interface{}) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	msg := &Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case q.msgChan <- msg:
		return nil
	default:
		return fmt.Errorf("queue is full (type=%s)", msgType)
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for msg := range q.msgChan {
		jobs, ok := q.jobs[msg.Type]
		if !ok {
			q.logger.Warn("no job registered for message type", applogger.String("type", msg.Type))
			continue
		}
		for _, job := range jobs {
			q.runJob(job, msg)
		}
	}
}

func (q *Queue) runJob(job Job, msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("panic in queue job",
				applogger.String("job", job.Name()),
				applogger.Any("panic", r),
			)
		}
	}()

	var err error
	for attempt := 0; attempt <= q.cfg.RetryLimit; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = job.Handle(ctx, msg.Payload)
		cancel()
		if err == nil {
			return
		}
		time.Sleep(q.cfg.RetryDelay)
	}

	q.logger.Error("queue job failed",
		applogger.String("job", job.Name()),
		applogger.String("type", msg.Type),
		applogger.Int("attempts", q.cfg.RetryLimit+1),
		applogger.Error(err),
	)
}

// Close drains the queue and stops workers. It waits out in-flight
// publishes before closing the channel.
func (q *Queue) Close() {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.msgChan)
		q.wg.Wait()
	})
}

func ParsePayload[T any](payload interface{}) (*T, error) {
	var result T

	switch p := payload.(type) {
	case *T:
		return p, nil
	case T:
		return &p, nil
	case map[string]interface{}:
		jsonData, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal map to json: %w", err)
		}
		if err := json.Unmarshal(jsonData, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal json to struct: %w", err)
		}
		return &result, nil
	case json.RawMessage:
		if err := json.Unmarshal(p, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		return &result, nil
	default:
		return nil, fmt.Errorf("invalid payload type: %T", payload)
	}
}
