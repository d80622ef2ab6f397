package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/structlog-go/structlog/core"
	"github.com/structlog-go/structlog/encoder"
	"github.com/structlog-go/structlog/writer"
)

// Builder provides a fluent API for configuring the dispatcher
type Builder struct {
	level       core.Level
	def         writer.Writer
	targets     map[string]writer.Writer
	caller      bool
	panics      bool
	slogDefault bool
}

// NewBuilder creates a new builder. The minimum level defaults to the
// environment-derived value (see EnvLevel) and the default writer to
// JSON over stderr.
func NewBuilder() *Builder {
	return &Builder{
		level:   EnvLevel(),
		targets: make(map[string]writer.Writer),
	}
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithLevelString sets the minimum level from a string such as "OFF",
// "ERROR", "WARN", "INFO", "DEBUG", "TRACE", ignoring case. Unknown
// input falls back to InfoLevel.
func (b *Builder) WithLevelString(level string) *Builder {
	b.level = ParseLevel(level)
	return b
}

// WithEnvLevel re-derives the minimum level from the environment,
// discarding any level set earlier on the builder.
func (b *Builder) WithEnvLevel() *Builder {
	b.level = EnvLevel()
	return b
}

// WithDefaultWriter replaces the built-in stderr JSON writer used when
// neither an exact target match nor a wildcard entry exists.
func (b *Builder) WithDefaultWriter(w writer.Writer) *Builder {
	b.def = w
	return b
}

// WithTargetWriter binds a writer to a target name. The Wildcard
// target matches every record without an exact registration.
// Registering the same target again replaces the previous binding;
// this is only possible pre-activation, the registry is immutable
// afterwards.
func (b *Builder) WithTargetWriter(target string, w writer.Writer) *Builder {
	b.targets[target] = w
	return b
}

// WithCaller enables caller information: records at Warn level and
// above carry module, file, and line fields stamped from the call site.
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.caller = enabled
	return b
}

// WithPanicCapture enables the panic capture helpers (CapturePanic,
// Run, Go) for the activated configuration.
func (b *Builder) WithPanicCapture() *Builder {
	b.panics = true
	return b
}

// WithSlogDefault installs the dispatcher as the log/slog default
// handler on activation, so existing slog call sites route through
// the target registry.
func (b *Builder) WithSlogDefault() *Builder {
	b.slogDefault = true
	return b
}

// Build validates the configuration and constructs a Dispatcher
// without touching process-global state. Tests and embedded uses
// construct throwaway dispatchers this way; Activate is the global
// single-shot installation.
func (b *Builder) Build() (*Dispatcher, error) {
	reg := registry{targets: make(map[string]entry, len(b.targets))}
	for target, w := range b.targets {
		if target == "" {
			return nil, &ConfigurationError{Reason: "empty target name"}
		}
		if w == nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("nil writer for target %q", target)}
		}
		if target == Wildcard {
			e := newEntry(w)
			reg.wildcard = &e
			continue
		}
		reg.targets[target] = newEntry(w)
	}

	def := b.def
	if def == nil {
		def = writer.NewSync(os.Stderr, encoder.JSON{})
	}
	reg.def = newEntry(def)

	return &Dispatcher{level: b.level, reg: reg, caller: b.caller}, nil
}

var (
	activated    atomic.Bool
	active       atomic.Pointer[Dispatcher]
	panicCapture atomic.Bool
)

// Active returns the globally activated dispatcher, or nil before
// Activate has succeeded.
func Active() *Dispatcher {
	return active.Load()
}

// Activate builds the configuration and installs it as the process-wide
// dispatcher. Exactly one activation may succeed per process: a second
// attempt returns a ConfigurationError and the running configuration
// is kept, since concurrently running writers may already hold
// references to it.
func (b *Builder) Activate() (*Dispatcher, error) {
	d, err := b.Build()
	if err != nil {
		return nil, err
	}
	if !activated.CompareAndSwap(false, true) {
		return nil, &ConfigurationError{Reason: "already activated"}
	}
	active.Store(d)
	panicCapture.Store(b.panics)
	if b.slogDefault {
		slog.SetDefault(slog.New(NewSlogHandler(d)))
	}
	return d, nil
}
