package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAnalysisCountsOutcome(t *testing.T) {
	before := testutil.ToFloat64(analysesTotal.WithLabelValues("languagetool", OutcomeSuccess))
	ObserveAnalysis("languagetool", OutcomeSuccess, 120)
	after := testutil.ToFloat64(analysesTotal.WithLabelValues("languagetool", OutcomeSuccess))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestHandlerRendersRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncPersistFailure()
	IncHintRetry()

	r := gin.New()
	r.GET("/metrics", Handler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, name := range []string{"grammar_persist_failures_total", "grammar_languagetool_hint_retries_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}
