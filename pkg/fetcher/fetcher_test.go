package fetcher

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egandro/global-temperature-heatmap/pkg/logger"
)

const sampleJSON = `{"baseTemperature":8.66,"monthlyVariance":[{"year":1753,"month":1,"variance":-1.366},{"year":1753,"month":2,"variance":-2.223}]}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	c := New(srv.URL+"/global-temperature.json", 5*time.Second, quietLogger())
	ds, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.MonthlyVariance, 2)
	assert.Equal(t, 8.66, ds.BaseTemperature)
}

func TestFetch_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	c := New(srv.URL, 5*time.Second, slog.New(logger.New(&buf, slog.LevelInfo)))

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, buf.String(), "[ERROR] Failed to fetch dataset")
}

func TestFetch_HTTPSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, quietLogger())
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_HTTPInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"monthlyVariance": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, quietLogger())
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	c := New(srv.URL, 50*time.Millisecond, quietLogger())
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, 5*time.Second, quietLogger())
	_, err := c.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global-temperature.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0600))

	for _, loc := range []string{path, "file://" + path} {
		t.Run(loc, func(t *testing.T) {
			c := New(loc, time.Second, quietLogger())
			assert.Equal(t, loc, c.Location())

			ds, err := c.Fetch(context.Background())
			require.NoError(t, err)
			assert.Len(t, ds.MonthlyVariance, 2)
		})
	}
}

func TestFetch_MissingFile(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "missing.json"), time.Second, quietLogger())
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open dataset file")
}

func TestNew_DefaultLogger(t *testing.T) {
	c := New("x.json", time.Second, nil)
	assert.NotNil(t, c.logger)
}
