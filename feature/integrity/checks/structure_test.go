package checks

import (
	"context"
	"errors"
	"testing"

	"preset-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCheckStructure(t *testing.T) {
	folders := []string{"backups/", "exports"}

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "presets").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "presets", folders)
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Bucket Unreachable", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "presets").Return(false, errors.New("dial tcp"))

		_, err := CheckStructure(context.Background(), mockClient, "presets", folders)
		assert.ErrorContains(t, err, "dial tcp")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "presets").Return(true, nil)
		ch := make(chan minio.ObjectInfo)
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "presets", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		missing, err := CheckStructure(context.Background(), mockClient, "presets", folders)
		assert.NoError(t, err)
		assert.Equal(t, []string{"backups", "exports"}, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "presets").Return(true, nil)

		for _, prefix := range []string{"backups/", "exports/"} {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: prefix}
			close(ch)
			mockClient.On("ListObjects", mock.Anything, "presets", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == prefix
			})).Return((<-chan minio.ObjectInfo)(ch))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "presets", folders)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Creates Markers", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "presets", "backups/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), mockClient, "presets", logger, []string{"backups"})
		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})

	t.Run("Stops On Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "presets", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, errors.New("denied"))

		err := FixStructure(context.Background(), mockClient, "presets", logger, []string{"backups", "exports"})
		assert.Error(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})
}
