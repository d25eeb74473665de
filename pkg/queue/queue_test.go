package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	applogger "LiskPredict/pkg/logger"
)

type recordingJob struct {
	name    string
	msgType string
	mu      sync.Mutex
	got     []interface{}
}

func (j *recordingJob) Name() string { return j.name }
func (j *recordingJob) Type() string { return j.msgType }
func (j *recordingJob) Handle(_ context.Context, payload interface{}) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.got = append(j.got, payload)
	return nil
}

func (j *recordingJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.got)
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestQueueDispatchesByType(t *testing.T) {
	q := New(QueueConfig{Workers: 1, QueueSize: 8}, testLogger(t))
	job := &recordingJob{name: "store", msgType: "created"}
	other := &recordingJob{name: "other", msgType: "deleted"}
	q.Register(job)
	q.Register(other)

	if err := q.PublishMessage(context.Background(), "created", "payload"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	q.Close()

	if job.count() != 1 {
		t.Fatalf("matching job handled %d messages, want 1", job.count())
	}
	if other.count() != 0 {
		t.Fatalf("non-matching job handled %d messages, want 0", other.count())
	}
}

func TestQueueClosedRejectsPublish(t *testing.T) {
	q := New(QueueConfig{Workers: 1, QueueSize: 8}, testLogger(t))
	q.Close()

	if err := q.PublishMessage(context.Background(), "created", "x"); err == nil {
		t.Fatal("publish on a closed queue should fail")
	}
}

func TestQueueFanOutToMultipleJobs(t *testing.T) {
	q := New(QueueConfig{Workers: 2, QueueSize: 8}, testLogger(t))
	a := &recordingJob{name: "a", msgType: "created"}
	b := &recordingJob{name: "b", msgType: "created"}
	q.Register(a)
	q.Register(b)

	for i := 0; i < 3; i++ {
		if err := q.PublishMessage(context.Background(), "created", i); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	q.Close()

	if a.count() != 3 || b.count() != 3 {
		t.Fatalf("fan-out counts a=%d b=%d, want 3/3", a.count(), b.count())
	}
}

func TestParsePayload(t *testing.T) {
	type pred struct {
		Symbol string `json:"symbol"`
	}

	direct, err := ParsePayload[pred](pred{Symbol: "lsk"})
	if err != nil || direct.Symbol != "lsk" {
		t.Fatalf("value payload: %v %+v", err, direct)
	}

	ptr, err := ParsePayload[pred](&pred{Symbol: "lsk"})
	if err != nil || ptr.Symbol != "lsk" {
		t.Fatalf("pointer payload: %v %+v", err, ptr)
	}

	fromMap, err := ParsePayload[pred](map[string]interface{}{"symbol": "lsk"})
	if err != nil || fromMap.Symbol != "lsk" {
		t.Fatalf("map payload: %v %+v", err, fromMap)
	}

	if _, err := ParsePayload[pred](42); err == nil {
		t.Fatal("unsupported payload type should error")
	}
}

func TestQueueCloseDuringPublishDoesNotPanic(t *testing.T) {
	q := New(QueueConfig{Workers: 2, QueueSize: 4}, testLogger(t))
	q.Register(&recordingJob{name: "store", msgType: "created"})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = q.PublishMessage(context.Background(), "created", j)
			}
		}()
	}
	q.Close()
	wg.Wait()

	if err := q.PublishMessage(context.Background(), "created", "late"); err == nil {
		t.Fatal("publish after close should fail")
	}
}

func TestQueueRetries(t *testing.T) {
	q := New(QueueConfig{Workers: 1, QueueSize: 8, RetryLimit: 2, RetryDelay: time.Millisecond}, testLogger(t))
	attempts := 0
	q.Register(&flakyJob{fails: 1, attempts: &attempts})

	if err := q.PublishMessage(context.Background(), "created", "x"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	q.Close()

	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2 (one failure, one success)", attempts)
	}
}

type flakyJob struct {
	fails    int
	attempts *int
}

func (j *flakyJob) Name() string { return "flaky" }
func (j *flakyJob) Type() string { return "created" }
func (j *flakyJob) Handle(context.Context, interface{}) error {
	*j.attempts++
	if *j.attempts <= j.fails {
		return context.DeadlineExceeded
	}
	return nil
}
