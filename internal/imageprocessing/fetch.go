package imageprocessing

import (
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"
)

// ErrFetch marks a remote image that could not be downloaded, whether the
// request failed or the server answered with a non-200 status.
var ErrFetch = errors.New("failed to download image")

// FetchImage downloads and decodes a remote image. The response body is
// capped at maxBytes so a hostile server cannot exhaust memory. Callers
// are responsible for validating the URL against the security policy
// first.
func FetchImage(url string, timeout time.Duration, maxBytes int64) (image.Image, string, error) {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: HTTP %d", ErrFetch, resp.StatusCode)
	}

	img, format, err := Decode(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}
