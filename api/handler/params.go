package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/snapper/models"
)

// parseScreenshotQuery builds a ScreenshotRequest from the query string.
//
// Only url and format are validated. Every other parameter that is missing
// or malformed silently takes its default: width=abc behaves exactly like
// omitting width.
func parseScreenshotQuery(c *gin.Context) (*models.ScreenshotRequest, *models.ScreenshotError) {
	url := c.Query("url")
	if url == "" {
		return nil, models.NewScreenshotError(models.ErrCodeInvalidInput,
			"query parameter 'url' is required", nil)
	}

	format := models.FormatPNG
	if v, ok := c.GetQuery("format"); ok {
		format = models.Format(v)
		if !format.Valid() {
			return nil, models.NewScreenshotError(models.ErrCodeInvalidInput,
				"query parameter 'format' must match ^(png|base64)$", nil)
		}
	}

	req := &models.ScreenshotRequest{
		URL:       url,
		Format:    format,
		Width:     queryIntOr(c, "width", models.DefaultWidth),
		Height:    queryIntOr(c, "height", models.DefaultHeight),
		FullPage:  queryBoolOr(c, "full_page", false),
		Mobile:    queryBoolOr(c, "mobile", false),
		Delay:     queryIntOr(c, "delay", models.DefaultDelay),
		CustomJS:  c.Query("custom_js"),
		UserAgent: c.Query("user_agent"),
		Stealth:   queryBoolOr(c, "stealth", false),
	}
	req.Defaults()
	return req, nil
}

// --- helper functions ---

func queryIntOr(c *gin.Context, key string, fallback int) int {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// queryBoolOr accepts the usual spellings of true/false, case-insensitive.
func queryBoolOr(c *gin.Context, key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
