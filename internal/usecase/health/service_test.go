package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected %s, got %s", Healthy, report.Status)
	}
	if report.Checks["database"] != CheckOK || report.Checks["upstream"] != CheckOK {
		t.Errorf("unexpected checks: %v", report.Checks)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected %s, got %s", Degraded, report.Status)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("expected database error, got %v", report.Checks)
	}
	if report.Checks["upstream"] != CheckOK {
		t.Errorf("expected upstream ok, got %v", report.Checks)
	}
}

func TestCheck_UpstreamDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("timeout")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected %s, got %s", Degraded, report.Status)
	}
	if report.Checks["upstream"] != CheckError {
		t.Errorf("expected upstream error, got %v", report.Checks)
	}
}

func TestCheck_NilCheckersSkipped(t *testing.T) {
	svc := New(nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected %s with no checkers, got %s", Healthy, report.Status)
	}
	if len(report.Checks) != 0 {
		t.Errorf("expected no checks, got %v", report.Checks)
	}
}
