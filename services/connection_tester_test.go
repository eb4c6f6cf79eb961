package services

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"connregistry/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialTester_ReachableHost(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	_, portStr, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	result := NewDialTester().Test(context.Background(), TestConfig{
		ConnType: "mysql",
		Host:     "127.0.0.1",
		Port:     port,
		Timeout:  time.Second,
	})

	assert.True(t, result.Status)
	assert.Equal(t, "Connection successfully tested", result.Message)
}

func TestDialTester_NoEndpointToProbe(t *testing.T) {
	result := NewDialTester().Test(context.Background(), TestConfig{ConnType: "fs"})

	assert.False(t, result.Status)
	assert.Contains(t, result.Message, "no host/port to probe")
}

func TestTestConfigFromBody(t *testing.T) {
	cfg := TestConfigFromBody(dto.ConnectionBody{
		ConnectionID: "c1",
		ConnType:     "postgres",
		Host:         strPtr("db.internal"),
		Port:         intPtr(5432),
		Login:        strPtr("svc"),
		Password:     strPtr("pw"),
	}, 2*time.Second)

	assert.Equal(t, "postgres", cfg.ConnType)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "svc", cfg.Login)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}
