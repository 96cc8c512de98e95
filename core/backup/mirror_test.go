package backup_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"preset-manager/core/backup"
	"preset-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStorageMirror_Upload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "studio_20250121_100000.xml")
	writeFile(t, path, "<preset/>")

	client := new(mocks.Client)
	client.On("PutObject", ctx, "presets", "backups/studio_20250121_100000.xml", mock.Anything, int64(9),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/xml" }),
	).Return(minio.UploadInfo{}, nil)

	mirror := backup.NewStorageMirror(client, "presets", "backups", nil)
	require.NoError(t, mirror.Upload(ctx, path))
	client.AssertExpectations(t)
}

func TestStorageMirror_UploadError(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "studio_20250121_100000.json")
	writeFile(t, path, "{}")

	client := new(mocks.Client)
	client.On("PutObject", ctx, "presets", "backups/studio_20250121_100000.json", mock.Anything, int64(2), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket unavailable"))

	err := backup.NewStorageMirror(client, "presets", "backups/", nil).Upload(ctx, path)
	assert.ErrorContains(t, err, "bucket unavailable")
}

func TestStorageMirror_Remove(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("RemoveObject", ctx, "presets", "backups/studio_20250121_100000.xml", minio.RemoveObjectOptions{}).Return(nil)

	mirror := backup.NewStorageMirror(client, "presets", "backups/", nil)
	require.NoError(t, mirror.Remove(ctx, "/var/backups/studio_20250121_100000.xml"))
	client.AssertExpectations(t)
}

func TestStorageMirror_List(t *testing.T) {
	ctx := context.Background()
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "backups/"}
	ch <- minio.ObjectInfo{Key: "backups/a_20250101_000000.xml"}
	ch <- minio.ObjectInfo{Key: "backups/b_20250101_000000.json"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", ctx, "presets", minio.ListObjectsOptions{Prefix: "backups/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	names, err := backup.NewStorageMirror(client, "presets", "backups/", nil).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"backups/a_20250101_000000.xml", "backups/b_20250101_000000.json"}, names)
}

func TestStorageMirror_Fetch(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("GetObject", ctx, "presets", "backups/a_20250101_000000.xml", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader("<remote/>")), nil)

	dest := filepath.Join(t.TempDir(), "a.xml")
	require.NoError(t, backup.NewStorageMirror(client, "presets", "backups/", nil).Fetch(ctx, "a_20250101_000000.xml", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "<remote/>", string(data))
}

func TestStorageMirror_RemoveAll(t *testing.T) {
	ctx := context.Background()
	var removed []string

	failures := make(chan minio.RemoveObjectError, 1)
	failures <- minio.RemoveObjectError{ObjectName: "backups/b_20250101_000000.xml", Err: errors.New("denied")}
	close(failures)

	client := new(mocks.Client)
	client.On("RemoveObjects", ctx, "presets", mock.Anything, minio.RemoveObjectsOptions{}).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return((<-chan minio.RemoveObjectError)(failures))

	mirror := backup.NewStorageMirror(client, "presets", "backups/", nil)
	err := mirror.RemoveAll(ctx, []string{"/tmp/a_20250101_000000.xml", "/tmp/b_20250101_000000.xml"})

	assert.ErrorContains(t, err, "denied")
	assert.Equal(t, []string{"backups/a_20250101_000000.xml", "backups/b_20250101_000000.xml"}, removed)
	require.NoError(t, mirror.RemoveAll(ctx, nil))
	client.AssertNumberOfCalls(t, "RemoveObjects", 1)
}
