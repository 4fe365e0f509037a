// internal/services/upload_service.go
package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
)

// 上传约束
const (
	MaxUploadSize = 5 * 1024 * 1024 // 5MB
	uploadDelay   = 800 * time.Millisecond
)

// allowedImageTypes 允许上传的图片MIME类型
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadResult 上传完成后的文件信息
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// UploadService 模拟对象存储的图片上传
// 不落盘文件内容，返回稳定格式的模拟地址
type UploadService struct {
	// Delay 模拟上传耗时，测试时可以置零
	Delay time.Duration
}

// NewUploadService 创建上传服务
func NewUploadService() *UploadService {
	return &UploadService{Delay: uploadDelay}
}

// Upload 校验并"上传"图片
// 上传带模拟延迟，ctx取消时立即返回
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, size int64) (*UploadResult, error) {
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return nil, apperrors.NewValidationError("不支持的图片类型: " + contentType)
	}
	if size <= 0 {
		return nil, apperrors.NewValidationError("文件内容为空")
	}
	if size > MaxUploadSize {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("文件大小超出上限%dMB", MaxUploadSize/(1024*1024)))
	}

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, apperrors.NewProcessingError("上传已取消", ctx.Err())
		}
	}

	ext := strings.ToLower(path.Ext(filename))
	key := uuid.NewString() + ext

	return &UploadResult{
		URL:      "mock-oss://persona-desk/" + key,
		Filename: filename,
		Size:     size,
	}, nil
}
