package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-service/internal/utils/sse"
)

func TestSSEEventStream(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sse/events", SSEEventStream(nil))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/sse/events?subscriber_id=s-1", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return sse.Broadcast(sse.Event{"pattern": "question_created"}) == 1
	}, time.Second, 10*time.Millisecond)

	// Give the stream a moment to write the event before disconnecting.
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, `"type":"connection_established"`)
	assert.Contains(t, body, `data: {"pattern":"question_created"}`)
	assert.Zero(t, sse.Broadcast(sse.Event{}))
}

func TestSSEEventStream_EndsOnShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	done := make(chan struct{})
	r := gin.New()
	r.GET("/sse/events", SSEEventStream(done))

	srv := httptest.NewUnstartedServer(r)
	srv.Config.RegisterOnShutdown(func() { close(done) })
	srv.Start()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sse/events?subscriber_id=s-2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Eventually(t, func() bool {
		return sse.Broadcast(sse.Event{"pattern": "ping"}) == 1
	}, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	start := time.Now()
	require.NoError(t, srv.Config.Shutdown(ctx))
	assert.Less(t, time.Since(start), time.Second)
	assert.Zero(t, sse.Broadcast(sse.Event{}))
}
