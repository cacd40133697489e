package imageprocessing

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	img, format, err := FetchImage(srv.URL+"/img.png", time.Second, 1<<20)
	if err != nil {
		t.Fatalf("FetchImage: %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 4 {
		t.Errorf("got format %q bounds %v", format, img.Bounds())
	}
}

func TestFetchImageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, _, err := FetchImage(srv.URL+"/missing.png", time.Second, 1<<20)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error %v does not match ErrFetch", err)
	}
}

func TestFetchImageUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, _, err := FetchImage(url, time.Second, 1<<20)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error %v does not match ErrFetch", err)
	}
}
