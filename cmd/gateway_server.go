package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"interview-service/internal/handler"
)

func startGateway(logger *zap.Logger, h *handler.Handler) (*http.Server, error) {
	mux, err := h.HTTPHandler()
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", viper.GetString("server.gwport")),
		Handler: mux,
	}

	go func() {
		logger.Info("Starting HTTP gateway server", zap.String("port", viper.GetString("server.gwport")))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP gateway", zap.Error(err))
		}
	}()
	return httpServer, nil
}
