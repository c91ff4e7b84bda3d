package handler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// stageFile copies a multipart upload to a temp file on local disk and
// returns its path. The media client removes the staged file after
// shipping it to the blob host.
func stageFile(c echo.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%w: %s file is required", domain.ErrValidation, field)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", field, err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", fmt.Errorf("stage upload %s: %w", field, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("stage upload %s: %w", field, err)
	}
	return dst.Name(), nil
}

// stageOptionalFile is stageFile for fields the client may omit.
func stageOptionalFile(c echo.Context, field string) (string, error) {
	if _, err := c.FormFile(field); err != nil {
		return "", nil
	}
	return stageFile(c, field)
}
