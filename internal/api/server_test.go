package api_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictacgo/internal/api"
	"github.com/mcoot/tictacgo/internal/config"
	"github.com/mcoot/tictacgo/internal/testutil"
)

func TestServerConfigFrom(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"TICTAC_HOST": "0.0.0.0", "TICTAC_PORT": "9090"})
	require.NoError(t, err)

	sc := api.ServerConfigFrom(cfg)
	assert.Equal(t, "0.0.0.0", sc.Host)
	assert.Equal(t, 9090, sc.Port)

	server := api.NewServer(http.NotFoundHandler(), sc, testutil.NopLogger())
	assert.Equal(t, "0.0.0.0:9090", server.Addr())
}

func TestServerServesAndShutsDown(t *testing.T) {
	ts := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := api.NewServer(ts.handler, api.ServerConfig{ShutdownTimeout: time.Second}, testutil.NopLogger())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ln.Addr().String(), server.Addr())

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}
