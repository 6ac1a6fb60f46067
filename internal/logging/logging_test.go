package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "json", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("product_id", 7).Info("created")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output should be JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "created" {
		t.Errorf("Expected msg 'created', got %v", entry["msg"])
	}
	if entry["product_id"] != float64(7) {
		t.Errorf("Expected product_id 7, got %v", entry["product_id"])
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", "text", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("Warn should be written")
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New("loud", "text", &bytes.Buffer{}); err == nil {
		t.Error("Expected error for invalid level")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Error("Expected error for invalid format")
	}
}

func TestGorm(t *testing.T) {
	logger := logrus.New()
	if Gorm(logger, false) == nil {
		t.Fatal("Gorm returned nil")
	}
	if Gorm(logger, true) == nil {
		t.Fatal("Gorm returned nil in debug mode")
	}
}
