package errors

import (
	"github.com/go-drift/postboard/pkg/log"
)

// LogHandler is an ErrorHandler that writes through the default logger.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	if h.Verbose {
		if err.URL != "" {
			log.E.F("%s [%s] url=%s: %v", err.Op, err.Kind, err.URL, err.Err)
		} else {
			log.E.F("%s [%s]: %v", err.Op, err.Kind, err.Err)
		}
		if err.StackTrace != "" {
			log.E.F("stack trace:\n%s", err.StackTrace)
		}
		return
	}
	log.E.F("%s: %v", err.Op, err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	log.E.Ln(err.Error())
	if h.Verbose && err.StackTrace != "" {
		log.E.F("stack trace:\n%s", err.StackTrace)
	}
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	log.E.F("%s (%s)", err.Error(), err.Element)
	if h.Verbose && err.StackTrace != "" {
		log.E.F("stack trace:\n%s", err.StackTrace)
	}
}
