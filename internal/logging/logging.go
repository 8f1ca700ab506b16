// Package logging provides the package-level loggers shared across zkvote,
// following the same ipfs/go-log convention the rest of the arithmetic and
// proof packages use.
package logging

import golog "github.com/ipfs/go-log"

// Logger returns a named event logger. Callers hold on to the result as a
// package-level var, e.g. `var log = logging.Logger("scalar")`.
func Logger(name string) *golog.ZapEventLogger {
	return golog.Logger(name)
}
