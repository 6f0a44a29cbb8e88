package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/runpad/internal/errs"
)

func TestResultStatusString(t *testing.T) {
	tests := map[ResultStatus]string{
		StatusOK:        "ok",
		StatusNoOp:      "no-op",
		StatusError:     "error",
		StatusCancelled: "cancelled",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
	if got := ResultStatus(99).String(); got != "unknown" {
		t.Errorf("out of range status = %q", got)
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ResultStatus
	}{
		{"nil", nil, StatusOK},
		{"not found", fmt.Errorf("find: %w", errs.ErrNotFound), StatusNoOp},
		{"out of range", fmt.Errorf("delete: %w", errs.ErrOutOfRange), StatusError},
		{"io", errs.IO("load", "/x", errors.New("denied")), StatusError},
		{"cancelled", fmt.Errorf("run: %w", context.Canceled), StatusCancelled},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromError(tt.err)
			if r.Status != tt.want {
				t.Errorf("status = %v, want %v", r.Status, tt.want)
			}
			if tt.err != nil && (r.Error != tt.err || r.Message != tt.err.Error()) {
				t.Errorf("error/message not kept: %v %q", r.Error, r.Message)
			}
		})
	}
}

func TestResultData(t *testing.T) {
	r := Success().WithData("n", 3).WithData("s", "x").WithData("b", true)
	if r.GetDataInt("n") != 3 || r.GetDataString("s") != "x" || !r.GetDataBool("b") {
		t.Errorf("data = %v", r.Data)
	}
	if r.GetDataInt("missing") != 0 || r.GetDataString("n") != "" {
		t.Error("missing or mistyped keys should return zero values")
	}

	base := Success().WithData("k", 1)
	derived := base.WithData("k", 2)
	if base.GetDataInt("k") != 1 || derived.GetDataInt("k") != 2 {
		t.Error("WithData should not mutate the receiver")
	}
}

func TestErrorResult(t *testing.T) {
	r := Errorf("bad %d", 7)
	if !r.IsError() || r.Message != "bad 7" {
		t.Errorf("Errorf = %v %q", r.Status, r.Message)
	}
	if r := Error(nil); r.Message != "" {
		t.Errorf("Error(nil) message = %q", r.Message)
	}
}
