package yahoo

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/gainers/date"
	"go.uber.org/zap"
)

// diskCache is an http.RoundTripper keeping successful responses on disk
// for the rest of the day.
type diskCache struct {
	base  http.RoundTripper
	dir   string
	today func() date.Date
	log   *zap.Logger
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	// the day is part of the key, so that entries expire every day.
	key := fmt.Sprintf("%s %s %s", c.today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		c.log.Debug("cache hit", zap.String("url", req.URL.String()))
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Debug("http get", zap.String("host", req.URL.Host), zap.String("path", req.URL.Path), zap.String("status", resp.Status))
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.log.Warn("cache write failed", zap.Error(err))
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores resp on disk. DumpResponse leaves resp.Body readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0644)
}

// Daily returns a client caching responses in dir until the end of the day.
// An empty dir uses the system temporary folder.
func Daily(dir string, log *zap.Logger) *http.Client {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "gainers-cache")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &http.Client{
		Timeout:   httpTimeout,
		Transport: &diskCache{base: http.DefaultTransport, dir: dir, today: date.Today, log: log},
	}
}
