// Package logger is the dispatch core: it filters events by level,
// materializes records, and routes each one to the writer registered
// for its target.
//
// Configuration is a single-shot builder:
//
//	d, err := logger.NewBuilder().
//		WithLevel(logger.InfoLevel).
//		WithTargetWriter("request", writer.NewSync(os.Stdout, encoder.JSON{})).
//		Activate()
//
// Activate installs the dispatcher process-wide exactly once; a second
// activation returns a ConfigurationError and leaves the running
// configuration untouched. After activation the target registry is
// immutable, which is what allows every log call to resolve its writer
// without taking a lock.
//
// Resolution order is exact target, then the "*" wildcard entry, then
// a built-in default writing JSON to stderr. Resolution never fails
// and delivery failures never reach the caller: a failed event is
// reported on the fallback stream and dropped.
//
// The minimum level defaults to the environment: LOG or LOG_LEVEL name
// a level directly, TRACE=1 or DEBUG=1 select those levels, otherwise
// Info.
//
// The package also bridges log/slog (SlogHandler routes standard
// library records by the reserved "target" attribute) and captures
// panics as structured records via CapturePanic, Run, and Go.
package logger
