package interfaces

import "context"

// IAttachmentStorage abstracts external object storage (MinIO) for request
// attachments. The workflow stores only the returned object name; the bytes
// never pass through the core again.

type IAttachmentStorage interface {
	Upload(ctx context.Context, data []byte, originalFilename string) (string, error)
	PresignedURL(ctx context.Context, objectName string) (string, error)
}
