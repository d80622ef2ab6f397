package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/structlog-go/structlog/encoder"
	"github.com/structlog-go/structlog/writer"
)

func TestBuilder_RejectsEmptyTarget(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewBuilder().
		WithTargetWriter("", writer.NewSync(&buf, encoder.JSON{})).
		Build()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestBuilder_RejectsNilWriter(t *testing.T) {
	_, err := NewBuilder().WithTargetWriter("api", nil).Build()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestBuilder_LevelString(t *testing.T) {
	for in, want := range map[string]Level{
		"trace": TraceLevel,
		"Debug": DebugLevel,
		"INFO":  InfoLevel,
		"warn":  WarnLevel,
		"ERROR": ErrorLevel,
		"off":   OffLevel,
		"bogus": InfoLevel,
	} {
		d, err := NewBuilder().WithLevelString(in).Build()
		if err != nil {
			t.Fatalf("Build(%q): %v", in, err)
		}
		if d.Level() != want {
			t.Errorf("WithLevelString(%q) = %v, want %v", in, d.Level(), want)
		}
	}
}

func TestEnvLevel(t *testing.T) {
	unset := func(t *testing.T, names ...string) {
		t.Helper()
		for _, name := range names {
			if old, ok := os.LookupEnv(name); ok {
				name, old := name, old
				t.Cleanup(func() { os.Setenv(name, old) })
				os.Unsetenv(name)
			}
		}
	}

	t.Run("default is info", func(t *testing.T) {
		unset(t, "LOG", "LOG_LEVEL", "TRACE", "DEBUG")
		if got := EnvLevel(); got != InfoLevel {
			t.Errorf("EnvLevel() = %v", got)
		}
	})

	t.Run("LOG wins", func(t *testing.T) {
		unset(t, "LOG_LEVEL", "TRACE", "DEBUG")
		t.Setenv("LOG", "error")
		if got := EnvLevel(); got != ErrorLevel {
			t.Errorf("EnvLevel() = %v", got)
		}
	})

	t.Run("LOG_LEVEL consulted", func(t *testing.T) {
		unset(t, "LOG", "TRACE", "DEBUG")
		t.Setenv("LOG_LEVEL", "warn")
		if got := EnvLevel(); got != WarnLevel {
			t.Errorf("EnvLevel() = %v", got)
		}
	})

	t.Run("unparsable LOG falls through to TRACE", func(t *testing.T) {
		unset(t, "LOG_LEVEL", "DEBUG")
		t.Setenv("LOG", "yes please")
		t.Setenv("TRACE", "1")
		if got := EnvLevel(); got != TraceLevel {
			t.Errorf("EnvLevel() = %v", got)
		}
	})

	t.Run("DEBUG set", func(t *testing.T) {
		unset(t, "LOG", "LOG_LEVEL", "TRACE")
		t.Setenv("DEBUG", "1")
		if got := EnvLevel(); got != DebugLevel {
			t.Errorf("EnvLevel() = %v", got)
		}
	})
}
