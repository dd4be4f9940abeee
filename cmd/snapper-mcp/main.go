package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// screenshotResponse mirrors the snapper base64 response.
type screenshotResponse struct {
	Screenshot string `json:"screenshot"`
}

// errorResponse mirrors the snapper error body.
type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func main() {
	apiURL := os.Getenv("SNAPPER_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8000"
	}

	s := server.NewMCPServer(
		"snapper",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(newScreenshotTool(), handleTakeScreenshot(apiURL, &http.Client{Timeout: 180 * time.Second}))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func newScreenshotTool() mcp.Tool {
	return mcp.NewTool("take_screenshot",
		mcp.WithDescription("Render a web page in a headless browser and return a PNG screenshot."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to capture"),
		),
		mcp.WithNumber("width",
			mcp.Description("Viewport width in pixels (default: 1920)"),
		),
		mcp.WithNumber("height",
			mcp.Description("Viewport height in pixels (default: 1080)"),
		),
		mcp.WithBoolean("full_page",
			mcp.Description("Capture the whole scrollable page instead of the viewport"),
		),
		mcp.WithBoolean("mobile",
			mcp.Description("Emulate a mobile device"),
		),
		mcp.WithNumber("delay",
			mcp.Description("Seconds to wait after the page loads, before capturing"),
		),
		mcp.WithString("custom_js",
			mcp.Description("JavaScript to run in the page before capturing"),
		),
		mcp.WithString("user_agent",
			mcp.Description("Custom User-Agent string"),
		),
	)
}

// screenshotQuery builds the /screenshot query for a tool call. Unset
// numeric and boolean arguments are left out so the server defaults apply.
func screenshotQuery(request mcp.CallToolRequest) (url.Values, error) {
	target, err := request.RequireString("url")
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("url", target)
	q.Set("format", "base64")

	for _, key := range []string{"width", "height", "delay"} {
		if v := request.GetInt(key, 0); v > 0 {
			q.Set(key, strconv.Itoa(v))
		}
	}
	for _, key := range []string{"full_page", "mobile"} {
		if request.GetBool(key, false) {
			q.Set(key, "true")
		}
	}
	for _, key := range []string{"custom_js", "user_agent"} {
		if v := request.GetString(key, ""); v != "" {
			q.Set(key, v)
		}
	}
	return q, nil
}

func handleTakeScreenshot(apiURL string, client *http.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := screenshotQuery(request)
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/screenshot?"+q.Encode(), nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		if resp.StatusCode != http.StatusOK {
			var errResp errorResponse
			if err := json.Unmarshal(body, &errResp); err != nil || errResp.Detail == "" {
				return mcp.NewToolResultError(fmt.Sprintf("screenshot failed with HTTP %d", resp.StatusCode)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", errResp.Code, errResp.Detail)), nil
		}

		var shot screenshotResponse
		if err := json.Unmarshal(body, &shot); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		return mcp.NewToolResultImage("Screenshot of "+q.Get("url"), shot.Screenshot, "image/png"), nil
	}
}
