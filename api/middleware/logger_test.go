package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clashfinder/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		status int
		level  string
	}{
		{name: "ok", status: http.StatusOK, level: "info"},
		{name: "not found", status: http.StatusNotFound, level: "warn"},
		{name: "upstream", status: http.StatusBadGateway, level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			engine := gin.New()
			engine.Use(RequestLogger(logger.NewWithWriter(&buf)))
			engine.GET("/player_stats/:summoner/:server", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/player_stats/Caps--EUW/eu-west", nil))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.level, line["level"])
			assert.Equal(t, "GET", line["method"])
			assert.Equal(t, "/player_stats/Caps--EUW/eu-west", line["path"])
			assert.Equal(t, float64(tt.status), line["status"])
			assert.Equal(t, "request", line["message"])
		})
	}
}
