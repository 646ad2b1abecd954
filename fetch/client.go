// Package fetch downloads the sprite sheet and profile page over HTTP.
package fetch

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/setanarut/flairsync"
	"github.com/setanarut/flairsync/utils"
)

// Largest response body accepted.
const maxBodySize = 32 << 20

// Client issues GET requests with a fixed timeout. It never retries.
type Client struct {
	http      *http.Client
	userAgent string
}

func New(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get returns the body of a 2xx response to url.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, flairsync.Wrap(err, flairsync.KindNetworkFetch, "build request").WithMetadata("url", url)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, flairsync.Wrap(err, flairsync.KindNetworkFetch, "request failed").WithMetadata("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, flairsync.Newf(flairsync.KindNetworkFetch, "unexpected status %s", resp.Status).WithMetadata("url", url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, flairsync.Wrap(err, flairsync.KindNetworkFetch, "read body").WithMetadata("url", url)
	}
	if len(body) > maxBodySize {
		return nil, flairsync.Newf(flairsync.KindNetworkFetch, "body exceeds %d bytes", maxBodySize).WithMetadata("url", url)
	}
	return body, nil
}

// Image downloads and decodes the image at url.
func (c *Client) Image(ctx context.Context, url string) (image.Image, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	img, err := utils.DecodeImage(body)
	if err != nil {
		return nil, flairsync.Wrap(err, flairsync.KindImageDecode, fmt.Sprintf("decode %d bytes", len(body))).WithMetadata("url", url)
	}
	return img, nil
}
