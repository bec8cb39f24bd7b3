package transport

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const body = "HomeTeam,AwayTeam,FTHG,FTAG\nArsenal,Chelsea,2,1\n"

func encodedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/plain.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
	mux.HandleFunc("/gzip.csv", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		zw.Write([]byte(body))
		zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	})
	mux.HandleFunc("/br.csv", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		bw.Write([]byte(body))
		bw.Close()
		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("User-Agent")))
	})
	mux.HandleFunc("/missing.csv", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return httptest.NewServer(mux)
}

func TestGetDecodesContent(t *testing.T) {
	server := encodedServer(t)
	defer server.Close()

	client := NewClientFrom(server.Client())
	for _, path := range []string{"/plain.csv", "/gzip.csv", "/br.csv"} {
		data, err := client.Get(context.Background(), server.URL+path)
		require.NoError(t, err, path)
		assert.Equal(t, body, string(data), path)
	}
}

func TestGetSendsBrowserHeaders(t *testing.T) {
	server := encodedServer(t)
	defer server.Close()

	data, err := NewClientFrom(server.Client()).Get(context.Background(), server.URL+"/ua")
	require.NoError(t, err)
	assert.Equal(t, userAgent, string(data))
}

func TestGetErrorStatus(t *testing.T) {
	server := encodedServer(t)
	defer server.Close()

	_, err := NewClientFrom(server.Client()).Get(context.Background(), server.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.http.Timeout)

	_, err = NewClient("/does/not/exist.pem", time.Second)
	assert.Error(t, err)
}
