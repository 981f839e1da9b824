package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubService struct {
	name     string
	startErr error
	block    bool
	stopped  bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *stubService) Stop(context.Context) error {
	s.stopped = true
	return nil
}

func TestRunnerStopsAllWhenOneFails(t *testing.T) {
	failing := &stubService{name: "http", startErr: errors.New("bind failed")}
	blocking := &stubService{name: "worker", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "bind failed" {
		t.Fatalf("want start error, got %v", err)
	}
	if !failing.stopped || !blocking.stopped {
		t.Fatalf("every service should be stopped")
	}
}

func TestRunnerCanceledContextIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := &stubService{name: "worker", block: true}
	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled context should exit cleanly, got %v", err)
	}
}

func TestBuildRunnerRejectsNilConfig(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
}

func TestRunnerStopsWhenEveryServiceReturns(t *testing.T) {
	svc := &stubService{name: "oneshot"}
	if err := NewRunner(svc).Run(context.Background(), time.Second, nil); err != nil {
		t.Fatalf("clean exit should return nil, got %v", err)
	}
	if !svc.stopped {
		t.Fatalf("service should be stopped after it returns")
	}
}

func TestRunnerRejectsNilService(t *testing.T) {
	if err := NewRunner(nil).Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("nil service should fail")
	}
}
