package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/structlog-go/structlog/encoder"
	"github.com/structlog-go/structlog/logger"
	"github.com/structlog-go/structlog/writer"
)

// Format represents the configuration file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota

	// FormatTOML represents TOML format (default)
	FormatTOML

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// File is the declarative logging configuration.
//
//	level = "debug"
//	capture_panics = true
//
//	[default]
//	destination = "stderr"
//
//	[targets.api]
//	destination = "/var/log/api.log"
//	format = "json"
//	async = true
//	queue_size = 4096
//	policy = "drop_oldest"
type File struct {
	Level         string            `toml:"level" yaml:"level"`
	CapturePanics bool              `toml:"capture_panics" yaml:"capture_panics"`
	Default       *Target           `toml:"default" yaml:"default"`
	Targets       map[string]Target `toml:"targets" yaml:"targets"`
}

// Target declares one writer binding. Destination is "stderr",
// "stdout", or a file path; Format is "json" (default) or "cbor";
// Gzip wraps a file destination in a gzip stream; Async puts a
// bounded queue in front of the writer.
type Target struct {
	Destination string `toml:"destination" yaml:"destination"`
	Format      string `toml:"format" yaml:"format"`
	Async       bool   `toml:"async" yaml:"async"`
	QueueSize   int    `toml:"queue_size" yaml:"queue_size"`
	Policy      string `toml:"policy" yaml:"policy"`
	Gzip        bool   `toml:"gzip" yaml:"gzip"`
}

// Load reads a configuration file and returns a logger.Builder ready
// to Activate. The format is detected from the extension: .toml is
// TOML, .yaml and .yml are YAML, anything else defaults to TOML.
func Load(path string) (*logger.Builder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(content, detectFormat(path))
}

// Parse builds a logger.Builder from raw configuration content.
func Parse(content []byte, format Format) (*logger.Builder, error) {
	var f File
	switch format {
	case FormatTOML, FormatAuto:
		if err := toml.Unmarshal(content, &f); err != nil {
			return nil, fmt.Errorf("config: TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &f); err != nil {
			return nil, fmt.Errorf("config: YAML parse error: %w", err)
		}
	default:
		return nil, &logger.ConfigurationError{Reason: fmt.Sprintf("unsupported format %q", format)}
	}
	return f.Builder()
}

// Builder converts a parsed File into a logger.Builder.
func (f *File) Builder() (*logger.Builder, error) {
	b := logger.NewBuilder()
	if f.Level != "" {
		if _, ok := logger.LookupLevel(f.Level); !ok {
			return nil, &logger.ConfigurationError{Reason: fmt.Sprintf("unknown level %q", f.Level)}
		}
		b.WithLevelString(f.Level)
	}
	if f.CapturePanics {
		b.WithPanicCapture()
	}
	if f.Default != nil {
		w, err := f.Default.writer("default")
		if err != nil {
			return nil, err
		}
		b.WithDefaultWriter(w)
	}
	for name, t := range f.Targets {
		w, err := t.writer(name)
		if err != nil {
			return nil, err
		}
		b.WithTargetWriter(name, w)
	}
	return b, nil
}

func (t *Target) writer(name string) (writer.Writer, error) {
	enc, err := t.encoder(name)
	if err != nil {
		return nil, err
	}

	var w writer.Writer
	switch t.Destination {
	case "stderr", "stdout":
		if t.Gzip {
			return nil, &logger.ConfigurationError{Reason: fmt.Sprintf("target %q: gzip requires a file destination", name)}
		}
		dest := os.Stderr
		if t.Destination == "stdout" {
			dest = os.Stdout
		}
		w = writer.NewSync(dest, enc)
	case "":
		return nil, &logger.ConfigurationError{Reason: fmt.Sprintf("target %q: missing destination", name)}
	default:
		if t.Gzip {
			w, err = writer.NewGzipFile(t.Destination, enc)
		} else {
			w, err = writer.NewFile(t.Destination, enc)
		}
		if err != nil {
			return nil, fmt.Errorf("config: target %q: %w", name, err)
		}
	}

	if t.Async {
		policy, err := t.overflowPolicy(name)
		if err != nil {
			return nil, err
		}
		w = writer.NewAsync(w, writer.AsyncConfig{
			QueueSize: t.QueueSize,
			Policy:    policy,
		})
	}
	return w, nil
}

func (t *Target) encoder(name string) (encoder.Encoder, error) {
	switch strings.ToLower(t.Format) {
	case "", "json":
		return encoder.JSON{}, nil
	case "cbor":
		return encoder.CBOR{}, nil
	default:
		return nil, &logger.ConfigurationError{Reason: fmt.Sprintf("target %q: unknown format %q", name, t.Format)}
	}
}

func (t *Target) overflowPolicy(name string) (writer.OverflowPolicy, error) {
	switch strings.ToLower(t.Policy) {
	case "", "block":
		return writer.Block, nil
	case "drop_oldest", "dropoldest":
		return writer.DropOldest, nil
	case "drop_newest", "dropnewest":
		return writer.DropNewest, nil
	default:
		return 0, &logger.ConfigurationError{Reason: fmt.Sprintf("target %q: unknown policy %q", name, t.Policy)}
	}
}

// detectFormat determines the configuration format from the file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}
