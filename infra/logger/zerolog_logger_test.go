package logger

import "testing"

func TestNewZerologLogger(t *testing.T) {
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("expected logger")
	}
	// exercise all levels; output goes to stdout
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": "v"})
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewZerologLoggerDev(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("expected logger")
	}
	l.Infof("console format")
}
