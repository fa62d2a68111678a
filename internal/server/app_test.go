package server

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	return c
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)
	assert.Nil(t, app.redis)
	assert.NoError(t, app.Close())
}

func TestNewApp_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := testConfig()
	c.RedisURL = mr.Addr()

	app, err := NewApp(context.Background(), c, logging.Nop{})
	require.NoError(t, err)
	require.NotNil(t, app.redis)
	assert.NoError(t, app.Close())
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	c := testConfig()
	c.RedisURL = "127.0.0.1:1"

	_, err := NewApp(context.Background(), c, logging.Nop{})
	assert.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
