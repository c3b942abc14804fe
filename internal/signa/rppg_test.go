package signa

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRPPG_PostsMultipartClip(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rppg/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "recording.webm", hdr.Filename)
		assert.Equal(t, "video/webm", hdr.Header.Get("Content-Type"))
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, []byte("webm-bytes"), data)

		writeJSON(w, http.StatusOK, `{"heart_rate":72.5,"respiratory_rate":16,"hrv":41.2}`)
	}, Config{})

	vitals, err := c.AnalyzeRPPG(context.Background(), Clip{Data: []byte("webm-bytes")})
	require.NoError(t, err)
	assert.Equal(t, 72.5, vitals.HeartRate)
	assert.Equal(t, 16.0, vitals.RespiratoryRate)
	require.NotNil(t, vitals.HRV)
	assert.Equal(t, 41.2, *vitals.HRV)
}

func TestAnalyzeRPPG_UsesUploadTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		writeJSON(w, http.StatusOK, `{"heart_rate":60,"respiratory_rate":12}`)
	}, Config{Timeout: 20 * time.Millisecond, UploadTimeout: 3 * time.Second})

	vitals, err := c.AnalyzeRPPG(context.Background(), Clip{Filename: "clip.mp4", ContentType: "video/mp4", Data: []byte("x")})
	require.NoError(t, err)
	assert.Nil(t, vitals.HRV)
}

func TestAnalyzeRPPG_UploadTimeoutElapses(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}, Config{UploadTimeout: 50 * time.Millisecond})

	_, err := c.AnalyzeRPPG(context.Background(), Clip{Data: []byte("x")})
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 50*time.Millisecond, timeout.After)
}

func TestAnalyzeRPPG_EmptyClip(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.AnalyzeRPPG(context.Background(), Clip{})
	requireValidation(t, err, "file", RuleRequired)
}
