package logger_test

import (
	"os"

	"github.com/structlog-go/structlog/encoder"
	"github.com/structlog-go/structlog/logger"
	"github.com/structlog-go/structlog/writer"
)

func Example() {
	// One-time process setup: route API events to a file, everything
	// else to stderr as JSON.
	apiLog, err := writer.NewFile("/tmp/api.log", encoder.JSON{})
	if err != nil {
		panic(err)
	}
	_, err = logger.NewBuilder().
		WithLevelString("debug").
		WithTargetWriter("api", apiLog).
		WithPanicCapture().
		Activate()
	if err != nil {
		panic(err)
	}

	log := logger.Target("api").With(logger.String("region", "eu"))
	log.Info("request served",
		logger.Int("status", 200),
		logger.Int("elapsed", 10),
	)
}

func ExampleBuilder_Build() {
	// Build constructs an isolated dispatcher without touching the
	// process-wide configuration, which is what tests want.
	d, err := logger.NewBuilder().
		WithLevel(logger.InfoLevel).
		WithDefaultWriter(writer.NewSync(os.Stdout, encoder.JSON{})).
		Build()
	if err != nil {
		panic(err)
	}
	d.Logger("worker").Warn("queue depth high", logger.Int("depth", 900))
}

func Example_asyncWriter() {
	sink, err := writer.NewFile("/tmp/app.log", encoder.JSON{})
	if err != nil {
		panic(err)
	}
	async := writer.NewAsync(sink, writer.AsyncConfig{
		QueueSize: 4096,
		Policy:    writer.DropOldest,
	})
	defer async.Close()

	d, err := logger.NewBuilder().
		WithDefaultWriter(async).
		Build()
	if err != nil {
		panic(err)
	}
	d.Logger("app").Info("started")
}
