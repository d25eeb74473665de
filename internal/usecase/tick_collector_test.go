package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"LiskPredict/internal/domain/models"
)

// scriptedStream hands out fresh channels on every Read, the way the
// websocket client does, and counts calls.
type scriptedStream struct {
	mu         sync.Mutex
	reads      int
	reconnects int
	tickCh     chan *models.Tick
	errCh      chan error
	connected  bool
}

func (s *scriptedStream) Connect(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

func (s *scriptedStream) Subscribe(context.Context) error { return nil }

func (s *scriptedStream) Read(context.Context) (<-chan *models.Tick, <-chan error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	s.tickCh = make(chan *models.Tick, 8)
	s.errCh = make(chan error, 1)
	return s.tickCh, s.errCh
}

func (s *scriptedStream) Reconnect(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconnects++
	s.connected = true
	return nil
}

func (s *scriptedStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

func (s *scriptedStream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *scriptedStream) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *scriptedStream) reconnectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconnects
}

func (s *scriptedStream) channels() (chan *models.Tick, chan error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickCh, s.errCh
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestCollectorAppendsTicks(t *testing.T) {
	stream := &scriptedStream{}
	history := NewPriceBook(16)
	c := NewTickCollector(stream, history, nil, noopMetrics{}, testLogger(t))

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Shutdown(context.Background())

	tickCh, _ := stream.channels()
	tickCh <- &models.Tick{Symbol: "lsk", Price: 1.5, Volume: 10, Time: time.Now()}

	waitFor(t, "tick in history", func() bool {
		p, ok := history.Last("lsk")
		return ok && p == 1.5
	})
}

func TestCollectorResumesReadingAfterStreamFailure(t *testing.T) {
	stream := &scriptedStream{}
	history := NewPriceBook(16)
	c := NewTickCollector(stream, history, nil, noopMetrics{}, testLogger(t))

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Shutdown(context.Background())

	tickCh, errCh := stream.channels()
	tickCh <- &models.Tick{Symbol: "lsk", Price: 1, Volume: 1, Time: time.Now()}
	waitFor(t, "first tick", func() bool {
		_, ok := history.Last("lsk")
		return ok
	})

	// the read loop dies the way the feed client does: one error, then
	// both channels close
	errCh <- errors.New("connection reset")
	close(tickCh)
	close(errCh)

	waitFor(t, "read restarted after reconnect", func() bool {
		return stream.readCount() == 2
	})
	if stream.reconnectCount() == 0 {
		t.Fatal("stream was re-read without reconnecting first")
	}

	tickCh2, _ := stream.channels()
	tickCh2 <- &models.Tick{Symbol: "lsk", Price: 2, Volume: 1, Time: time.Now()}
	waitFor(t, "tick from reconnected stream", func() bool {
		p, _ := history.Last("lsk")
		return p == 2
	})
}

func TestCollectorShutdownStopsReconnecting(t *testing.T) {
	stream := &scriptedStream{}
	c := NewTickCollector(stream, NewPriceBook(4), nil, noopMetrics{}, testLogger(t))

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	// the consume loop has exited; a dying channel must not revive it
	_, errCh := stream.channels()
	close(errCh)
	time.Sleep(20 * time.Millisecond)
	if n := stream.readCount(); n != 1 {
		t.Fatalf("reads after shutdown = %d, want 1", n)
	}
}
