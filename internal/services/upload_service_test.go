// internal/services/upload_service_test.go
package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
)

func newTestUploadService() *UploadService {
	svc := NewUploadService()
	svc.Delay = 0
	return svc
}

func TestUploadServiceAcceptsImage(t *testing.T) {
	svc := newTestUploadService()

	result, err := svc.Upload(context.Background(), "avatar.png", "image/png", 1024)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "mock-oss://persona-desk/"))
	assert.True(t, strings.HasSuffix(result.URL, ".png"))
	assert.Equal(t, "avatar.png", result.Filename)
	assert.Equal(t, int64(1024), result.Size)
}

func TestUploadServiceURLsAreUnique(t *testing.T) {
	svc := newTestUploadService()

	first, err := svc.Upload(context.Background(), "a.jpg", "image/jpeg", 10)
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), "a.jpg", "image/jpeg", 10)
	require.NoError(t, err)

	assert.NotEqual(t, first.URL, second.URL)
}

func TestUploadServiceRejectsType(t *testing.T) {
	svc := newTestUploadService()

	for _, contentType := range []string{"application/pdf", "text/html", "video/mp4", ""} {
		_, err := svc.Upload(context.Background(), "file.bin", contentType, 1024)
		assert.True(t, apperrors.IsValidationError(err), contentType)
	}

	// 大小写不敏感
	_, err := svc.Upload(context.Background(), "a.webp", "Image/WebP", 1024)
	assert.NoError(t, err)
}

func TestUploadServiceRejectsSize(t *testing.T) {
	svc := newTestUploadService()

	_, err := svc.Upload(context.Background(), "big.png", "image/png", MaxUploadSize+1)
	assert.True(t, apperrors.IsValidationError(err))

	_, err = svc.Upload(context.Background(), "empty.png", "image/png", 0)
	assert.True(t, apperrors.IsValidationError(err))

	// 恰好5MB可以通过
	_, err = svc.Upload(context.Background(), "edge.png", "image/png", MaxUploadSize)
	assert.NoError(t, err)
}

func TestUploadServiceHonorsCancellation(t *testing.T) {
	svc := NewUploadService()
	svc.Delay = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := svc.Upload(ctx, "slow.png", "image/png", 1024)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
