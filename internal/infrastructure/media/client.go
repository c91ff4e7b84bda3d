// Package media implements the blob-host boundary over HTTP. It targets
// a Cloudinary-style unsigned upload API: multipart POST returning the
// asset's public URL, and a destroy endpoint addressed by public id.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/videotube/videotube-api/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Config holds the media-host settings.
type Config struct {
	// UploadURL is the full endpoint for unsigned uploads.
	UploadURL string
	// DestroyURL is the endpoint for deleting assets by public id.
	DestroyURL string
	// UploadPreset names the unsigned preset configured on the host.
	UploadPreset string
	Timeout      time.Duration
}

// Client talks to the media host.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

var _ ports.MediaStore = (*Client)(nil)

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload ships the staged local file to the media host and removes the
// local copy once the host has accepted it. The local file is also
// removed on failure so the staging directory cannot fill up.
func (c *Client) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", fmt.Errorf("upload: empty local path")
	}
	defer os.Remove(localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("upload: open staged file: %w", err)
	}
	defer file.Close()

	body := &strings.Builder{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return "", fmt.Errorf("upload: build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("upload: copy file: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.cfg.UploadPreset); err != nil {
		return "", fmt.Errorf("upload: build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("upload: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload: media host returned %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload: decode response: %w", err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("upload: media host returned no url")
	}
	return out.SecureURL, nil
}

// Delete removes a previously uploaded asset, addressed by its public
// URL. The public id is the final path segment without extension.
func (c *Client) Delete(ctx context.Context, assetURL string) error {
	publicID := publicIDFromURL(assetURL)
	if publicID == "" {
		return fmt.Errorf("delete: cannot derive public id from %q", assetURL)
	}

	form := url.Values{"public_id": {publicID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.DestroyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("delete: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete: media host returned %d", resp.StatusCode)
	}
	return nil
}

func publicIDFromURL(assetURL string) string {
	segment := assetURL[strings.LastIndex(assetURL, "/")+1:]
	if dot := strings.LastIndex(segment, "."); dot > 0 {
		segment = segment[:dot]
	}
	return segment
}
