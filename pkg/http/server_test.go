package http

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServerStopsWhenPortIsTaken(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer taken.Close()

	viper.Set("API_PORT", taken.Addr().(*net.TCPAddr).Port)
	defer viper.Set("API_PORT", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := zap.NewNop()
	api, err := NewServer(log).Use(ctx, log, false, nil, prometheus.NewRegistry())
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		assert.Nil(t, GracefulShutdown(api.Done()))
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("server kept running after its listener failed")
	}
	assert.Error(t, api.Wait())
}

func TestServerStopsOnCancel(t *testing.T) {
	viper.Set("API_PORT", 0)
	defer viper.Set("API_PORT", nil)

	ctx, cancel := context.WithCancel(context.Background())
	log := zap.NewNop()
	api, err := NewServer(log).Use(ctx, log, false, nil, prometheus.NewRegistry())
	require.NoError(t, err)

	cancel()
	select {
	case <-api.Done():
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
	assert.ErrorIs(t, api.Wait(), context.Canceled)
}
