package lportal

import (
	"fmt"
	"log"
)

// convertCtx carries per-Convert-call mutable state that would otherwise
// be global: the warn-once tracking set and, in tests, a sink that
// captures warnings instead of writing to the process log. This is an
// explicit context value threaded through the converter in place of a
// global manager/debug singleton.
type convertCtx struct {
	warnedOnce map[string]bool
	sink       func(string) // nil unless a caller wants to observe warnings.

	distTol, normTol float64 // bound-plane dedup thresholds, see Options.
}

func newConvertCtx() *convertCtx {
	return &convertCtx{warnedOnce: map[string]bool{}}
}

// warnf is an unconditional warn-and-drop: authoring errors (unresolved
// portal target, degenerate bound, unknown light subtype). Conversion
// proceeds.
func (c *convertCtx) warnf(format string, args ...any) {
	if c.sink != nil {
		c.sink(fmt.Sprintf(format, args...))
		return
	}
	log.Printf("lportal: "+format, args...)
}

// warnOnce fires at most once per key for the lifetime of this convertCtx:
// resource exhaustion (plane pool). Output is incomplete but consistent.
func (c *convertCtx) warnOnce(key, format string, args ...any) {
	if c.warnedOnce[key] {
		return
	}
	c.warnedOnce[key] = true
	c.warnf(format, args...)
}

// assertf panics if cond is false: a structural precondition violation
// (e.g. a room_ node that is not a Spatial). These represent bugs in the
// caller or its scene authoring pipeline; there is no recovery.
func (c *convertCtx) assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("lportal: "+format, args...))
	}
}
