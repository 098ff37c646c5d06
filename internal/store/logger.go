package store

import (
	badger "github.com/dgraph-io/badger/v4"
)

// LevelLogger is the leveled logger subset the store logs through.
// *config.Logger satisfies it.
type LevelLogger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// BadgerLogger adapts a LevelLogger to badger's logging interface so store
// internals log through the application's sink. Badger warnings are
// reported at error level; info chatter is demoted to debug.
func BadgerLogger(l LevelLogger) badger.Logger {
	return badgerLogger{l: l}
}

type badgerLogger struct {
	l LevelLogger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Error(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug(format, args...)
}
