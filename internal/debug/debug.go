// Package debug provides env-gated trace logging for the match checking
// engine. Tracing is off by default; set PATCHECK_DEBUG_MATCH=1 (or
// PATCHECK_DEBUG_SPLIT=1 for constructor splitting) to enable. Output goes
// to stderr and is dimmed when stderr is a terminal.
package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type debug struct {
	Match bool
	Split bool
}

var d *debug
var dim *color.Color

func init() {
	d = &debug{
		Match: boolEnv("PATCHECK_DEBUG_MATCH"),
		Split: boolEnv("PATCHECK_DEBUG_SPLIT"),
	}
	dim = color.New(color.FgHiBlack)
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		dim.DisableColor()
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Match reports whether usefulness-recursion tracing is enabled.
func Match() bool {
	return d.Match
}

// Split reports whether constructor-splitting tracing is enabled.
func Split() bool {
	return d.Split
}

// Matchf logs one usefulness trace line when enabled.
func Matchf(format string, args ...interface{}) {
	if d.Match {
		logf(format, args...)
	}
}

// Splitf logs one splitting trace line when enabled.
func Splitf(format string, args ...interface{}) {
	if d.Split {
		logf(format, args...)
	}
}

func logf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, dim.Sprint(fmt.Sprintf(format, args...)))
}
