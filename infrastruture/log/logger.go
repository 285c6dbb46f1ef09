// Package logger provides named, colored loggers used by every component of the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

var ErrEmptyName = errors.New("logger name must not be empty")

// Logger writes lines of the form "[NAME] [LEVEL] message key=value".
type Logger struct {
	entry *logrus.Entry
}

var _ i.Logger = &Logger{}

// New creates a logger whose tag is printed in the given ANSI color.
func New(name, color string, out io.Writer) (*Logger, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&formatter{name: strings.ToUpper(name), color: color})

	return &Logger{entry: logrus.NewEntry(base)}, nil
}

// Info logs msg at info level.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Error logs msg at error level.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string) {
	l.entry.Debug(msg)
}

// WithField returns a logger that appends key=value to every line.
func (l *Logger) WithField(key string, value any) i.Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

type formatter struct {
	name  string
	color string
}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s[%s]%s [%s] %s",
		e.Time.Format("2006/01/02 15:04:05"),
		f.color, f.name, colorReset,
		strings.ToUpper(e.Level.String()),
		e.Message,
	)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, e.Data[k])
	}
	sb.WriteByte('\n')

	return []byte(sb.String()), nil
}
