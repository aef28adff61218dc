package server

import (
	"testing"
	"time"
)

func TestWebLoggerBasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-session-123", messageChan)

	logger.Printf("%s\n", "Test log message")

	select {
	case msg := <-messageChan:
		if msg.Message != "Test log message\n" {
			t.Errorf("Message = %q, want %q", msg.Message, "Test log message\n")
		}
		if msg.Level != "info" {
			t.Errorf("Level = %q, want %q", msg.Level, "info")
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp looks stale: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for console message")
	}
}

func TestWebLoggerChannelFullDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-session-789", messageChan)

	logger.Printf("Message 1\n")
	<-messageChan

	// The channel above is now empty again, but the point of this test is
	// that a full channel never blocks Printf; simulate fullness directly.
	messageChan <- ConsoleMessage{}
	done := make(chan struct{})
	go func() {
		logger.Printf("Message 2\n")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Printf blocked on a full console channel")
	}
}

func TestWebLoggerNilChannel(t *testing.T) {
	logger := NewWebLogger("test-session-nil", nil)
	logger.Printf("should not panic\n")
}

func TestWebLoggerFormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-session-format", messageChan)

	logger.Printf("dispatched %d final tracers over %d workers\n", 4, 8)

	select {
	case msg := <-messageChan:
		want := "dispatched 4 final tracers over 8 workers\n"
		if msg.Message != want {
			t.Errorf("Message = %q, want %q", msg.Message, want)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for formatted message")
	}
}
