package ports

import "context"

// MediaStore is the blob-hosting boundary. Upload ships a staged local
// file to the media host and returns its public URL; Delete removes a
// previously uploaded asset by that URL.
type MediaStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Delete(ctx context.Context, url string) error
}
