package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/runpad/internal/errs"
)

// ResultStatus is the outcome class of an action.
type ResultStatus uint8

const (
	StatusOK ResultStatus = iota
	StatusNoOp
	StatusError
	StatusCancelled
)

var statusNames = [...]string{
	StatusOK:        "ok",
	StatusNoOp:      "no-op",
	StatusError:     "error",
	StatusCancelled: "cancelled",
}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is what a handler reports back. Message is the status line shown to
// the user; Data carries values callers and tests may inspect.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string

	// Redraw asks the view to lay out the document and gutter again.
	Redraw bool

	Data map[string]interface{}
}

func (r Result) IsOK() bool    { return r.Status == StatusOK }
func (r Result) IsError() bool { return r.Status == StatusError }

func Success() Result { return Result{Status: StatusOK} }

func SuccessWithMessage(msg string) Result { return Success().WithMessage(msg) }

func NoOp() Result { return Result{Status: StatusNoOp} }

func NoOpWithMessage(msg string) Result { return NoOp().WithMessage(msg) }

func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// Error wraps err in an error result whose message is err's text.
func Error(err error) Result {
	r := Result{Status: StatusError, Error: err}
	if err != nil {
		r.Message = err.Error()
	}
	return r
}

func Errorf(format string, args ...interface{}) Result {
	return Error(fmt.Errorf(format, args...))
}

// FromError classifies err. Cancellation and deadlines map to
// StatusCancelled, not-found kinds to StatusNoOp, the rest to StatusError.
// The error itself is always kept.
func FromError(err error) Result {
	if err == nil {
		return Success()
	}
	r := Error(err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.Status = StatusCancelled
	} else if errs.KindOf(err) == errs.KindNotFound {
		r.Status = StatusNoOp
	}
	return r
}

func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

func (r Result) WithRedraw() Result {
	r.Redraw = true
	return r
}

// WithData returns a copy carrying key. The receiver's map is not modified.
func (r Result) WithData(key string, value interface{}) Result {
	data := make(map[string]interface{}, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

func (r Result) GetData(key string) (interface{}, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString and the other typed getters return the zero value when key
// is missing or holds another type.
func (r Result) GetDataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}

func (r Result) GetDataBool(key string) bool {
	b, _ := r.Data[key].(bool)
	return b
}

func (r Result) GetDataInt(key string) int {
	switch n := r.Data[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}
