package translate_test

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skillcert/backend/translate"
)

func TestTranslateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gtx", r.URL.Query().Get("client"))
		assert.Equal(t, "en", r.URL.Query().Get("sl"))
		assert.Equal(t, "ur", r.URL.Query().Get("tl"))
		assert.Equal(t, "Hello world", r.URL.Query().Get("q"))

		w.Write([]byte(`[[["ہیلو ","Hello ",null,null],["دنیا","world",null,null]],null,"en"]`))
	}))
	defer server.Close()

	client := translate.NewClient(server.URL, time.Second, nil)
	translated, ok := client.Translate(context.Background(), "Hello world", "ur")

	assert.True(t, ok)
	assert.Equal(t, "ہیلو دنیا", translated)
}

func TestTranslateEmptyText(t *testing.T) {
	client := translate.NewClient("http://unused.invalid", time.Second, nil)

	_, ok := client.Translate(context.Background(), "   ", "ur")
	assert.False(t, ok)
}

func TestTranslateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := translate.NewClient(server.URL, time.Second, nil)
	_, ok := client.Translate(context.Background(), "Hello", "ur")
	assert.False(t, ok)
}

func TestTranslateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	client := translate.NewClient(server.URL, time.Second, nil)
	_, ok := client.Translate(context.Background(), "Hello", "ur")
	assert.False(t, ok)
}

func TestTranslateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[[["late","late",null,null]]]`))
	}))
	defer server.Close()

	client := translate.NewClient(server.URL, 20*time.Millisecond, nil)
	_, ok := client.Translate(context.Background(), "Hello", "ur")
	assert.False(t, ok)
}

func TestTranslateUnreachableEndpoint(t *testing.T) {
	client := translate.NewClient("http://127.0.0.1:1", 100*time.Millisecond, nil)

	_, ok := client.Translate(context.Background(), "Hello", "ur")
	assert.False(t, ok)
}

func TestTranslateLogsThroughInjectedLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	client := translate.NewClient(server.URL, time.Second, logger)
	_, ok := client.Translate(context.Background(), "Hello", "ur")

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "translation failed")
}
