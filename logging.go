package cdcl

import "github.com/sirupsen/logrus"

// loggerFields is a small alias so call sites read like the rest of this
// package rather than importing logrus directly everywhere.
type loggerFields = logrus.Fields

// newDefaultLogger returns a logger at WarnLevel, effectively silent unless
// WithVerbose(true) or WithLogger is used to override it. This mirrors the
// teacher's `const verbose = false` default: tracing exists but is off
// unless asked for.
func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
