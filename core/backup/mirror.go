package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"preset-manager/core/logger"
	"preset-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Mirror copies backups to a remote location.
type Mirror interface {
	// Upload copies a local backup file to the remote.
	Upload(ctx context.Context, localPath string) error
	// Remove deletes the remote copy of a backup.
	Remove(ctx context.Context, localPath string) error
	// RemoveAll deletes the remote copies of several backups in one batch.
	RemoveAll(ctx context.Context, localPaths []string) error
	// List returns the object names of the remote copies.
	List(ctx context.Context) ([]string, error)
	// Fetch downloads the remote copy of name to localPath.
	Fetch(ctx context.Context, name, localPath string) error
}

// StorageMirror mirrors backups into an object storage bucket under a prefix.
type StorageMirror struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewStorageMirror creates a mirror writing to bucket/prefix.
func NewStorageMirror(client storage.Client, bucket, prefix string, log *zap.Logger) *StorageMirror {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &StorageMirror{client: client, bucket: bucket, prefix: prefix, logger: logger.OrNop(log)}
}

// ObjectName returns the object key for a local backup path.
func (m *StorageMirror) ObjectName(localPath string) string {
	return path.Join(m.prefix, filepath.Base(localPath))
}

// Upload copies a local backup file to the bucket.
func (m *StorageMirror) Upload(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	object := m.ObjectName(localPath)
	_, err = m.client.PutObject(ctx, m.bucket, object, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(localPath),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}

	m.logger.Info("Mirrored backup", zap.String("bucket", m.bucket), zap.String("object", object))
	return nil
}

// Remove deletes the remote copy of a local backup path.
func (m *StorageMirror) Remove(ctx context.Context, localPath string) error {
	object := m.ObjectName(localPath)
	if err := m.client.RemoveObject(ctx, m.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", object, err)
	}
	return nil
}

// RemoveAll deletes the remote copies of localPaths with a single batch call.
// The first failure is returned after every object has been attempted.
func (m *StorageMirror) RemoveAll(ctx context.Context, localPaths []string) error {
	if len(localPaths) == 0 {
		return nil
	}

	objects := make(chan minio.ObjectInfo, len(localPaths))
	for _, p := range localPaths {
		objects <- minio.ObjectInfo{Key: m.ObjectName(p)}
	}
	close(objects)

	var firstErr error
	for rerr := range m.client.RemoveObjects(ctx, m.bucket, objects, minio.RemoveObjectsOptions{}) {
		m.logger.Error("Failed to remove mirrored backup", zap.String("object", rerr.ObjectName), zap.Error(rerr.Err))
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to remove %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	return firstErr
}

// List returns the object names stored under the prefix.
func (m *StorageMirror) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: m.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// Fetch downloads the remote copy of name (a base name or full key) to localPath.
func (m *StorageMirror) Fetch(ctx context.Context, name, localPath string) error {
	object := name
	if !strings.HasPrefix(name, m.prefix) {
		object = m.ObjectName(name)
	}

	reader, err := m.client.GetObject(ctx, m.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", object, err)
	}
	defer reader.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		return fmt.Errorf("failed to fetch %s: %w", object, err)
	}
	return out.Close()
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return "application/xml"
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
