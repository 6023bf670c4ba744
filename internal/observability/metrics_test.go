package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics("shopchat", prometheus.NewRegistry())

	m.ObserveChatTurn("local", "greeting", 3*time.Millisecond)
	m.ObserveChatTurn("llm", "", 900*time.Millisecond)
	m.IncDegradedReply("groq")
	m.IncPersistenceError("requests")
	m.IncContact("disabled")
	m.ObserveHTTP("POST", "/chat", 200, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatTurns.WithLabelValues("local", "greeting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatTurns.WithLabelValues("llm", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DegradedReplies.WithLabelValues("groq")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceErrors.WithLabelValues("requests")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactMessages.WithLabelValues("disabled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/chat", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveChatTurn("local", "general", time.Millisecond)
		m.IncDegradedReply("groq")
		m.IncPersistenceError("requests")
		m.IncContact("sent")
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("shopchat", prometheus.NewRegistry())
	m.IncContact("sent")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `shopchat_contact_messages_total{result="sent"} 1`)
}
