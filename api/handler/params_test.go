package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/snapper/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parse(t *testing.T, rawQuery string) (*models.ScreenshotRequest, *models.ScreenshotError) {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/screenshot?"+rawQuery, nil)
	return parseScreenshotQuery(c)
}

func TestParseScreenshotQuery_Defaults(t *testing.T) {
	req, verr := parse(t, "url=https://example.com")
	require.Nil(t, verr)

	assert.Equal(t, &models.ScreenshotRequest{
		URL:    "https://example.com",
		Format: models.FormatPNG,
		Width:  1920,
		Height: 1080,
	}, req)
}

func TestParseScreenshotQuery_AllFields(t *testing.T) {
	req, verr := parse(t, "url=https://example.com&format=base64&width=800&height=600"+
		"&full_page=true&mobile=1&delay=2&custom_js=document.title%3D%27x%27&user_agent=Bot%2F1.0&stealth=on")
	require.Nil(t, verr)

	assert.Equal(t, models.FormatBase64, req.Format)
	assert.Equal(t, 800, req.Width)
	assert.Equal(t, 600, req.Height)
	assert.True(t, req.FullPage)
	assert.True(t, req.Mobile)
	assert.Equal(t, 2, req.Delay)
	assert.Equal(t, "document.title='x'", req.CustomJS)
	assert.Equal(t, "Bot/1.0", req.UserAgent)
	assert.True(t, req.Stealth)
}

func TestParseScreenshotQuery_MalformedFallsBackToDefaults(t *testing.T) {
	omitted, verr := parse(t, "url=https://example.com")
	require.Nil(t, verr)

	tests := []struct {
		name  string
		query string
	}{
		{"non-integer width", "width=abc"},
		{"non-integer height", "height=tall"},
		{"non-integer delay", "delay=soon"},
		{"float width", "width=12.5"},
		{"empty values", "width=&height=&delay="},
		{"zero viewport", "width=0&height=0"},
		{"negative viewport", "width=-5&height=-1"},
		{"negative delay", "delay=-3"},
		{"bad booleans", "full_page=perhaps&mobile=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, verr := parse(t, "url=https://example.com&"+tt.query)
			require.Nil(t, verr)
			assert.Equal(t, omitted, req)
		})
	}
}

func TestParseScreenshotQuery_BooleanSpellings(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "t", "yes", "y", "on"} {
		req, verr := parse(t, "url=u&full_page="+v)
		require.Nil(t, verr)
		assert.True(t, req.FullPage, v)
	}
	for _, v := range []string{"0", "false", "F", "no", "n", "off"} {
		req, verr := parse(t, "url=u&mobile="+v)
		require.Nil(t, verr)
		assert.False(t, req.Mobile, v)
	}
}

func TestParseScreenshotQuery_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing url", "format=png"},
		{"empty url", "url="},
		{"unknown format", "url=u&format=jpeg"},
		{"empty format", "url=u&format="},
		{"format case", "url=u&format=PNG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, verr := parse(t, tt.query)
			assert.Nil(t, req)
			require.NotNil(t, verr)
			assert.Equal(t, models.ErrCodeInvalidInput, verr.Code)
			assert.Equal(t, http.StatusUnprocessableEntity, mapErrorToStatus(verr))
		})
	}
}

func TestMapErrorToStatus(t *testing.T) {
	assert.Equal(t, http.StatusGatewayTimeout, mapErrorToStatus(models.NavigationTimeout("u", nil)))
	assert.Equal(t, http.StatusInternalServerError, mapErrorToStatus(models.EngineFailure(assert.AnError)))
}
