package screenshot

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/snapper/config"
	"github.com/use-agent/snapper/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}

// fakeEngine returns a fixed image or error. When hold is non-nil each
// Capture blocks until it is closed.
type fakeEngine struct {
	img  []byte
	err  error
	hold chan struct{}

	calls   atomic.Int32
	running atomic.Int32
	peak    atomic.Int32
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Capture(ctx context.Context, _ *models.ScreenshotRequest) ([]byte, error) {
	f.calls.Add(1)
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.hold != nil {
		select {
		case <-f.hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.img, f.err
}

func newRequest(format models.Format) *models.ScreenshotRequest {
	req := &models.ScreenshotRequest{URL: "http://example.test", Format: format}
	req.Defaults()
	return req
}

func TestTake_PNGPassesBytesThrough(t *testing.T) {
	img := tinyPNG(t)
	svc := NewService(&fakeEngine{img: img}, config.CaptureConfig{})

	res, err := svc.Take(context.Background(), newRequest(models.FormatPNG))
	require.NoError(t, err)

	assert.Equal(t, img, res.PNG)
	assert.Empty(t, res.Base64)
	assert.Equal(t, models.FormatPNG, res.Format)
}

func TestTake_Base64DecodesToPNG(t *testing.T) {
	img := tinyPNG(t)
	svc := NewService(&fakeEngine{img: img}, config.CaptureConfig{})

	res, err := svc.Take(context.Background(), newRequest(models.FormatBase64))
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(res.Base64)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(decoded, pngMagic))
	assert.Equal(t, img, decoded)
}

func TestTake_PlainErrorBecomesEngineFailure(t *testing.T) {
	svc := NewService(&fakeEngine{err: errors.New("net::ERR_NAME_NOT_RESOLVED")}, config.CaptureConfig{})

	_, err := svc.Take(context.Background(), newRequest(models.FormatPNG))

	var se *models.ScreenshotError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.ErrCodeEngineFailure, se.Code)
	assert.Equal(t, "net::ERR_NAME_NOT_RESOLVED", se.Message)
}

func TestTake_NavigationTimeoutPassesThrough(t *testing.T) {
	timeout := models.NavigationTimeout("http://10.255.255.1", context.DeadlineExceeded)
	svc := NewService(&fakeEngine{err: timeout}, config.CaptureConfig{})

	_, err := svc.Take(context.Background(), newRequest(models.FormatPNG))

	var se *models.ScreenshotError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.ErrCodeNavigationTimeout, se.Code)
	assert.Equal(t, "Timeout while navigating to http://10.255.255.1.", se.Message)
}

func TestTake_UnboundedByDefault(t *testing.T) {
	const n = 6
	eng := &fakeEngine{img: tinyPNG(t), hold: make(chan struct{})}
	svc := NewService(eng, config.CaptureConfig{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Take(context.Background(), newRequest(models.FormatPNG))
		}()
	}

	require.Eventually(t, func() bool { return eng.running.Load() == n }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, n, svc.Stats().ActiveBrowsers)
	assert.Zero(t, svc.Stats().MaxBrowsers)

	close(eng.hold)
	wg.Wait()
	assert.Zero(t, svc.Stats().ActiveBrowsers)
}

func TestTake_GateBoundsConcurrentBrowsers(t *testing.T) {
	const n = 5
	eng := &fakeEngine{img: tinyPNG(t), hold: make(chan struct{})}
	svc := NewService(eng, config.CaptureConfig{MaxBrowsers: 2})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Take(context.Background(), newRequest(models.FormatPNG))
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return eng.running.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 2, eng.running.Load())

	close(eng.hold)
	wg.Wait()

	assert.EqualValues(t, n, eng.calls.Load())
	assert.LessOrEqual(t, eng.peak.Load(), int32(2))
	assert.Equal(t, 2, svc.Stats().MaxBrowsers)
}

func TestTake_GateWaitHonorsCancellation(t *testing.T) {
	eng := &fakeEngine{img: tinyPNG(t), hold: make(chan struct{})}
	defer close(eng.hold)
	svc := NewService(eng, config.CaptureConfig{MaxBrowsers: 1})

	go func() { _, _ = svc.Take(context.Background(), newRequest(models.FormatPNG)) }()
	require.Eventually(t, func() bool { return eng.running.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := svc.Take(ctx, newRequest(models.FormatPNG))

	var se *models.ScreenshotError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.ErrCodeEngineFailure, se.Code)
	assert.EqualValues(t, 1, eng.calls.Load(), "waiting request must not reach the engine")
}
