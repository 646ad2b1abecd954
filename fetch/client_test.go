package fetch

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/setanarut/flairsync"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/flair.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "flairsync-test" {
			http.Error(w, "bad agent", http.StatusForbidden)
			return
		}
		img := image.NewNRGBA(image.Rect(0, 0, 32, 16))
		img.Set(1, 1, color.NRGBA{239, 83, 80, 255})
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, img)
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<div id="all-flair"></div>`))
	})
	mux.HandleFunc("/garbage.png", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("definitely not an image"))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientImage(t *testing.T) {
	srv := newServer(t)
	c := New(5*time.Second, "flairsync-test")

	img, err := c.Image(context.Background(), srv.URL+"/flair.png")
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 32, 16) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r>>8 != 239 {
		t.Errorf("pixel red = %d, want 239", r>>8)
	}
}

func TestClientGet(t *testing.T) {
	srv := newServer(t)
	body, err := New(5*time.Second, "").Get(context.Background(), srv.URL+"/profile")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(body) != `<div id="all-flair"></div>` {
		t.Errorf("body = %q", body)
	}
}

func TestClientErrors(t *testing.T) {
	srv := newServer(t)
	c := New(200*time.Millisecond, "flairsync-test")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		kind flairsync.Kind
	}{
		{"not found", func() error { _, err := c.Get(ctx, srv.URL+"/missing"); return err }, flairsync.KindNetworkFetch},
		{"forbidden", func() error { _, err := New(time.Second, "other").Image(ctx, srv.URL+"/flair.png"); return err }, flairsync.KindNetworkFetch},
		{"timeout", func() error { _, err := c.Get(ctx, srv.URL+"/slow"); return err }, flairsync.KindNetworkFetch},
		{"bad url", func() error { _, err := c.Get(ctx, "://nope"); return err }, flairsync.KindNetworkFetch},
		{"not an image", func() error { _, err := c.Image(ctx, srv.URL+"/garbage.png"); return err }, flairsync.KindImageDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !flairsync.IsKind(err, tt.kind) {
				t.Errorf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestClientCancelled(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(5*time.Second, "").Get(ctx, srv.URL+"/profile"); !flairsync.IsKind(err, flairsync.KindNetworkFetch) {
		t.Errorf("Get() error = %v, want NETWORK_FETCH", err)
	}
}
