package store

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopcanvas/shopcanvas/errors"
)

// AssetPath builds the object storage path for a store asset:
// {storeID}/{purpose}-{index?}-{timestamp}.{ext}. The index slot is used for
// list items (category images); top-level assets omit it.
func AssetPath(storeID, purpose string, index int, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	ts := now.UnixMilli()
	if index >= 0 {
		return fmt.Sprintf("%s/%s-%d-%d%s", storeID, purpose, index, ts, ext)
	}
	return fmt.Sprintf("%s/%s-%d%s", storeID, purpose, ts, ext)
}

// UploadAsset pushes image bytes to object storage and returns the public
// URL to write into the configuration tree. Pass index -1 for assets that
// are not part of a list.
func (r *Repository) UploadAsset(ctx context.Context, storeID, purpose string, index int, filename string, data []byte) (string, error) {
	path := AssetPath(storeID, purpose, index, filename, time.Now())

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := r.client.Storage().From(r.bucket).Upload(ctx, path, data, contentType)
	if err != nil {
		return "", errors.UploadFailed(path, err)
	}
	if err := resp.Error(); err != nil {
		return "", errors.UploadFailed(path, err)
	}

	url := r.client.Storage().From(r.bucket).GetPublicURL(path)
	r.logger.WithField("path", path).Debug("Asset uploaded")
	return url, nil
}
