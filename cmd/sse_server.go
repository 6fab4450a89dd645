package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"interview-service/internal/utils/sse"
)

const heartbeatInterval = 60 * time.Second

func startSSE(logger *zap.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Shutdown does not cancel streaming requests, so open streams watch done.
	done := make(chan struct{})
	r.GET("/sse/events", SSEEventStream(done))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", viper.GetString("server.sseport")),
		Handler: r,
	}
	srv.RegisterOnShutdown(func() { close(done) })

	go func() {
		logger.Info("Starting SSE server", zap.String("port", viper.GetString("server.sseport")))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve SSE", zap.Error(err))
		}
	}()
	return srv
}

// SSEEventStream streams every notification handled by this instance to the
// subscriber until it disconnects or done is closed.
func SSEEventStream(done <-chan struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		streamEvents(c, done)
	}
}

func streamEvents(c *gin.Context, done <-chan struct{}) {
	subscriberID := c.Query("subscriber_id")
	if subscriberID == "" {
		subscriberID = uuid.NewString()
	}

	// Set SSE headers
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	origin := viper.GetString("server.cors_origin")
	c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
	if origin != "*" {
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Cache-Control")

	ch := make(chan sse.Event, 10)
	sse.RegisterChannel(subscriberID, ch)
	defer sse.UnregisterChannel(subscriberID)

	writeEvent(c, sse.Event{
		"type":         "connection_established",
		"subscriberID": subscriberID,
		"timestamp":    time.Now().Unix(),
	})

	// Heartbeat ticker to keep connection alive
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return

		case <-done:
			return

		case <-heartbeat.C:
			writeEvent(c, sse.Event{
				"type":      "heartbeat",
				"timestamp": time.Now().Unix(),
			})

		case event := <-ch:
			writeEvent(c, event)
		}
	}
}

func writeEvent(c *gin.Context, event sse.Event) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", jsonData)
	c.Writer.Flush()
}
