package api

import (
	"testing"
	"time"
)

func TestHubStopTerminatesRun(t *testing.T) {
	h := NewWebSocketHub()

	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()

	h.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}

	// Idempotent, and broadcasting into a stopped hub must not block.
	h.Stop()
	h.Broadcast("pattern:done", map[string]interface{}{"pointCount": 0})
}

func TestHubStopWithoutRun(t *testing.T) {
	h := NewWebSocketHub()
	h.Stop()
	h.Stop()
}
