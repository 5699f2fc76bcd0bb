package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

	authcore "github.com/nutrifit/authcore"
)

type fakeSource struct {
	snapshot authcore.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() authcore.MetricsSnapshot { return f.snapshot }
func (f *fakeSource) AuditDropped() uint64                      { return f.dropped }

func TestRender(t *testing.T) {
	source := &fakeSource{
		snapshot: authcore.MetricsSnapshot{Counters: map[authcore.MetricID]uint64{
			authcore.MetricLoginSuccess: 7,
			authcore.MetricLoginFailure: 2,
		}},
		dropped: 3,
	}

	out := NewFromSource(source).Render()
	for _, want := range []string{
		"# TYPE authcore_login_success_total counter",
		"authcore_login_success_total 7",
		"authcore_login_failure_total 2",
		"authcore_audit_dropped_total 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	out := NewFromSource(&fakeSource{snapshot: authcore.MetricsSnapshot{Counters: map[authcore.MetricID]uint64{}}}).Render()
	if out != "" {
		t.Fatalf("expected empty output for empty snapshot, got %q", out)
	}
}

func TestHandler(t *testing.T) {
	source := &fakeSource{
		snapshot: authcore.MetricsSnapshot{Counters: map[authcore.MetricID]uint64{
			authcore.MetricTokenIssued: 1,
		}},
	}

	rec := httptest.NewRecorder()
	NewFromSource(source).Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "authcore_token_issued_total 1") {
		t.Fatalf("expected rendered counter in body, got %q", rec.Body.String())
	}
}
