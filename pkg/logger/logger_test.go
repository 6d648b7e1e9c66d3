package logger

import (
	"testing"
)

func TestMockLogger(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("Scored portfolio", "facilities", 400)
	mock.Debug("Debug message")
	mock.Warn("Warning message")
	mock.Error("Error message", "error", "test error")

	if len(*mock.Messages) != 4 {
		t.Errorf("Expected 4 messages, got %d", len(*mock.Messages))
	}

	if !mock.HasMessage("INFO", "Scored portfolio") {
		t.Error("Expected to find INFO message")
	}

	if !mock.HasMessageContaining("ERROR", "Error") {
		t.Error("Expected to find ERROR message containing 'Error'")
	}

	loggerWithContext := mock.With("run", "2024-01-15-140000")
	loggerWithContext.Info("Context message")

	lastMsg := (*mock.Messages)[len(*mock.Messages)-1]
	if lastMsg.Msg != "Context message" {
		t.Errorf("Expected context message, got: %s", lastMsg.Msg)
	}

	found := false
	for i := 0; i < len(lastMsg.Args)-1; i += 2 {
		if lastMsg.Args[i] == "run" && lastMsg.Args[i+1] == "2024-01-15-140000" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected to find run context in args")
	}

	mock.Clear()
	if len(*mock.Messages) != 0 {
		t.Error("Expected messages to be cleared")
	}
}

func TestSetupLogger(t *testing.T) {
	SetupLogger(true, "json")
	if GetGlobalLogger() == nil {
		t.Fatal("Expected global logger to be set")
	}

	SetupLogger(false, "text")
	if GetGlobalLogger() == nil {
		t.Fatal("Expected global logger to be set")
	}
}
