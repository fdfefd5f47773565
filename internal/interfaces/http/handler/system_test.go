package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping() error { return p.err }

func newSystemTestServer(db Pinger) *gin.Engine {
	engine := gin.New()
	NewSystemHandler(db).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestHealthEndpoint(t *testing.T) {
	engine := newSystemTestServer(nil)

	w, env := doJSON(t, engine, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestReadyEndpoint(t *testing.T) {
	t.Run("ready when database responds", func(t *testing.T) {
		engine := newSystemTestServer(fakePinger{})
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/ready", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unavailable when database is down", func(t *testing.T) {
		engine := newSystemTestServer(fakePinger{err: assert.AnError})
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("no database means always ready", func(t *testing.T) {
		engine := newSystemTestServer(nil)
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/ready", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
