package process

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestFakeEchoes(t *testing.T) {
	f := &Fake{}
	res, err := f.Run(context.Background(), "print(1)")
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != "print(1)" || !res.Succeeded || res.ID == "" {
		t.Errorf("result = %+v", res)
	}
	if got := f.Sources(); !reflect.DeepEqual(got, []string{"print(1)"}) {
		t.Errorf("sources = %v", got)
	}
}

func TestFakeRespond(t *testing.T) {
	f := &Fake{Respond: func(source string) (Result, error) {
		return Result{Output: "Traceback\n", ExitCode: 1}, nil
	}}
	res, err := f.Run(context.Background(), "raise")
	if err != nil {
		t.Fatal(err)
	}
	if res.Succeeded || res.ExitCode != 1 || res.ID == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestFakeGateCancel(t *testing.T) {
	f := &Fake{Gate: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.Run(ctx, "x")
	if !errors.Is(err, ErrCancelled) || !res.Cancelled {
		t.Errorf("res=%+v err=%v", res, err)
	}
}
