package sampler

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

var errNotScripted = errors.New("command not scripted")

type fakeClient struct {
	listFn func(filter string) ([]string, error)
	execFn func(container string, cmd ...string) (string, error)
	logsFn func(container string, tail int) (string, error)
}

func (f *fakeClient) ListContainers(_ context.Context, filter string) ([]string, error) {
	if f.listFn == nil {
		return nil, errNotScripted
	}
	return f.listFn(filter)
}

func (f *fakeClient) Exec(_ context.Context, container string, cmd ...string) (string, error) {
	if f.execFn == nil {
		return "", errNotScripted
	}
	return f.execFn(container, cmd...)
}

func (f *fakeClient) Logs(_ context.Context, container string, tail int) (string, error) {
	if f.logsFn == nil {
		return "", errNotScripted
	}
	return f.logsFn(container, tail)
}

type fakeCommander struct {
	outputFn func(name string, args ...string) (string, error)
}

func (f *fakeCommander) Output(_ context.Context, name string, args ...string) (string, error) {
	if f.outputFn == nil {
		return "", errNotScripted
	}
	return f.outputFn(name, args...)
}

func (f *fakeCommander) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	return f.Output(ctx, name, args...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
