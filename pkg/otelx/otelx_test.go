package otelx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/reactx/pkg/config"
	"github.com/Abraxas-365/reactx/pkg/otelx"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := otelx.Setup(context.Background(), config.OTelConfig{
		Enabled:     false,
		Endpoint:    "http://localhost:4318",
		ServiceName: "test-service",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otelx.Setup(context.Background(), config.OTelConfig{Enabled: true, ServiceName: "test-service"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address, nothing is exported.
	shutdown, err := otelx.Setup(context.Background(), config.OTelConfig{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "test-service",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
