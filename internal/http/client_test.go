package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/show/386", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>show</html>"))
	})
	mux.HandleFunc("/show/9999", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/shows", http.StatusFound)
	})
	mux.HandleFunc("/shows", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("listing"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient("Mozilla/5.0")

	page, err := client.GetPage(context.Background(), server.URL+"/show/386")
	require.NoError(t, err)
	assert.Equal(t, "<html>show</html>", string(page.Body))
	assert.Equal(t, "/show/386", page.FinalURL.Path)

	page, err = client.GetPage(context.Background(), server.URL+"/show/9999")
	require.NoError(t, err)
	assert.Equal(t, "/shows", page.FinalURL.Path)
}

func TestClient_GetPage_Status(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewClient("Mozilla/5.0").GetPage(context.Background(), server.URL+"/show/1")
	assert.Error(t, err)
}

func TestClient_GetPage_AcceptsAny2xx(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusNonAuthoritativeInfo, http.StatusPartialContent} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte("<html>show</html>"))
			}))
			defer server.Close()

			page, err := NewClient("Mozilla/5.0").GetPage(context.Background(), server.URL+"/show/386")
			require.NoError(t, err)
			assert.Equal(t, "<html>show</html>", string(page.Body))
		})
	}
}

func TestClient_ResolveRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mirror/stream/386", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		http.Redirect(w, r, "/media/WEFUNK_Show_386_2006-12-07_hq.mp3", http.StatusFound)
	})
	mux.HandleFunc("/media/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	target, err := NewClient("Mozilla/5.0").ResolveRedirect(context.Background(), server.URL+"/mirror/stream/386")
	require.NoError(t, err)
	assert.Equal(t, "/media/WEFUNK_Show_386_2006-12-07_hq.mp3", target.Path)
}
