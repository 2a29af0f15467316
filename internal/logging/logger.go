// Package logging provides the leveled logger shared by the session, viewer
// and CLI. Lines carry a wall-clock stamp, the level and the component that
// wrote them:
//
//	14:03:07.512 INFO  session: opened raylib window 1280x720
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int32(l))
}

// ParseLevel accepts the lower- or upper-case level names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	// With returns a logger tagging its lines with component, sharing the
	// level and outputs of its parent.
	With(component string) Logger
}

// Console writes debug and info lines to one stream, warnings and errors to
// another. Loggers derived through With share a single level.
type Console struct {
	component string
	level     *atomic.Int32
	mu        *sync.Mutex
	out, err  io.Writer
	now       func() time.Time
}

func New(level Level) *Console {
	return NewWithWriters(level, os.Stdout, os.Stderr)
}

func NewWithWriters(level Level, out, errOut io.Writer) *Console {
	c := &Console{
		level: new(atomic.Int32),
		mu:    new(sync.Mutex),
		out:   out,
		err:   errOut,
		now:   time.Now,
	}
	c.level.Store(int32(level))
	return c
}

func (c *Console) Level() Level         { return Level(c.level.Load()) }
func (c *Console) SetLevel(level Level) { c.level.Store(int32(level)) }

func (c *Console) With(component string) Logger {
	child := *c
	if c.component != "" {
		component = c.component + "/" + component
	}
	child.component = component
	return &child
}

func (c *Console) Debugf(format string, args ...any) { c.write(LevelDebug, c.out, format, args) }
func (c *Console) Infof(format string, args ...any)  { c.write(LevelInfo, c.out, format, args) }
func (c *Console) Warnf(format string, args ...any)  { c.write(LevelWarn, c.err, format, args) }
func (c *Console) Errorf(format string, args ...any) { c.write(LevelError, c.err, format, args) }

func (c *Console) write(level Level, w io.Writer, format string, args []any) {
	if level < c.Level() {
		return
	}
	var b strings.Builder
	b.WriteString(c.now().Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s ", level)
	if c.component != "" {
		b.WriteString(c.component)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, format, args...)
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(w, b.String())
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}
func (n Nop) With(string) Logger  { return n }
