// Package log is a small levelled logger that prints a high precision unix
// timestamp, a coloured level tag and the source location of each line.
//
// The package-level printers F, E, W, I, D and T write through a shared
// default logger:
//
//	log.I.F("loaded %d posts", n)
//	if log.E.Chk(err) {
//	    return
//	}
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

// Levels, in increasing verbosity.
const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

// LevelNames maps level ids to their config names.
var LevelNames = []string{"off", "fatal", "error", "warn", "info", "debug", "trace"}

var levelTags = []struct {
	tag      string
	colorize func(a ...any) string
}{
	{"", fmt.Sprint},
	{"FTL", color.New(color.BgRed, color.FgHiWhite).Sprint},
	{"ERR", color.New(color.FgHiRed).Sprint},
	{"WRN", color.New(color.FgHiYellow).Sprint},
	{"INF", color.New(color.FgHiGreen).Sprint},
	{"DBG", color.New(color.FgHiBlue).Sprint},
	{"TRC", color.New(color.FgHiMagenta).Sprint},
}

// ParseLevel returns the level id for a name such as "info" or "debug".
func ParseLevel(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range LevelNames {
		if n == name {
			return i, nil
		}
	}
	return Info, fmt.Errorf("unknown log level %q (want one of %s)", name, strings.Join(LevelNames, ", "))
}

// Logger writes levelled lines to a writer.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	level atomic.Int32

	F, E, W, I, D, T Printer
}

// New creates a logger writing to w that prints lines at or below level.
func New(w io.Writer, level int) *Logger {
	l := &Logger{w: w}
	l.level.Store(int32(level))
	l.F = Printer{l: l, level: Fatal}
	l.E = Printer{l: l, level: Error}
	l.W = Printer{l: l, level: Warn}
	l.I = Printer{l: l, level: Info}
	l.D = Printer{l: l, level: Debug}
	l.T = Printer{l: l, level: Trace}
	return l
}

// SetLevel changes the most verbose level printed.
func (l *Logger) SetLevel(level int) {
	l.level.Store(int32(level))
}

// Level returns the most verbose level printed.
func (l *Logger) Level() int {
	return int(l.level.Load())
}

// SetWriter redirects output.
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	l.w = w
	l.mu.Unlock()
}

func (l *Logger) enabled(level int) bool {
	return level != Off && level <= l.Level()
}

func (l *Logger) print(level int, text string) {
	now := time.Now()
	stamp := fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/1000)
	line := fmt.Sprintf("%s %s %s %s\n", stamp, levelTags[level].colorize(levelTags[level].tag),
		strings.TrimRight(text, "\n"), location(2))
	l.mu.Lock()
	_, _ = io.WriteString(l.w, line)
	l.mu.Unlock()
}

// location returns "dir/file.go:line" for the caller skip frames up.
func location(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/%s:%d", filepath.Base(filepath.Dir(file)), filepath.Base(file), line)
}

// Printer prints at a single level.
type Printer struct {
	l     *Logger
	level int
}

// Ln prints its operands separated by spaces.
func (p Printer) Ln(a ...any) {
	if !p.l.enabled(p.level) {
		return
	}
	p.l.print(p.level, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
}

// F prints like fmt.Printf.
func (p Printer) F(format string, a ...any) {
	if !p.l.enabled(p.level) {
		return
	}
	p.l.print(p.level, fmt.Sprintf(format, a...))
}

// S prints a spew dump of its operands.
func (p Printer) S(a ...any) {
	if !p.l.enabled(p.level) {
		return
	}
	p.l.print(p.level, "\n"+spew.Sdump(a...))
}

// C calls closure only when the level is enabled.
func (p Printer) C(closure func() string) {
	if !p.l.enabled(p.level) {
		return
	}
	p.l.print(p.level, closure())
}

// Chk prints err if it is non-nil and reports whether it was.
func (p Printer) Chk(err error) bool {
	if err == nil {
		return false
	}
	if p.l.enabled(p.level) {
		p.l.print(p.level, err.Error())
	}
	return true
}

// Err formats an error, prints it and returns it.
func (p Printer) Err(format string, a ...any) error {
	err := fmt.Errorf(format, a...)
	if p.l.enabled(p.level) {
		p.l.print(p.level, err.Error())
	}
	return err
}

var std = New(os.Stderr, Info)

// Package-level printers for the default logger.
var (
	F = std.F
	E = std.E
	W = std.W
	I = std.I
	D = std.D
	T = std.T
)

// Default returns the shared logger behind the package-level printers.
func Default() *Logger {
	return std
}

// SetLevel sets the default logger's level.
func SetLevel(level int) {
	std.SetLevel(level)
}

// SetLevelName sets the default logger's level by name.
func SetLevelName(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	std.SetLevel(level)
	return nil
}

// SetWriter redirects the default logger.
func SetWriter(w io.Writer) {
	std.SetWriter(w)
}
