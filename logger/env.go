package logger

import (
	"os"

	"github.com/structlog-go/structlog/core"
)

// EnvLevel returns the minimum level derived from the environment.
//
// LOG and LOG_LEVEL are consulted first and used when they parse to a
// known level name. Otherwise a set TRACE variable enables trace
// logging and a set DEBUG variable enables debug logging. With none of
// these present the level is Info.
func EnvLevel() core.Level {
	for _, name := range []string{"LOG", "LOG_LEVEL"} {
		if v, ok := os.LookupEnv(name); ok {
			if l, ok := core.ParseLevel(v); ok {
				return l
			}
		}
	}
	if _, ok := os.LookupEnv("TRACE"); ok {
		return core.TraceLevel
	}
	if _, ok := os.LookupEnv("DEBUG"); ok {
		return core.DebugLevel
	}
	return core.InfoLevel
}
