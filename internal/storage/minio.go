package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"deptsync/internal/config"
	"deptsync/internal/logger"
)

// imageContentTypes 归入"图片"目录的 MIME 类型
var imageContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"image/x-icon":  true,
}

// Service MinIO 对象存储服务
type Service struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// NewService 创建存储服务并确保桶存在
func NewService(ctx context.Context, cfg *config.MinioConfig) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	s := &Service{client: client, bucket: cfg.Bucket, log: logger.Get()}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("检查存储桶失败: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("创建存储桶失败: %w", err)
		}
		s.log.Info("存储桶已创建", zap.String("bucket", s.bucket))
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, s.bucket)
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		s.log.Warn("设置存储桶公共读策略失败", zap.Error(err))
	}
	return nil
}

// Classify 按 MIME 类型归类为 图片 或 文档
func Classify(contentType string) string {
	if imageContentTypes[contentType] {
		return "图片"
	}
	return "文档"
}

// SanitizePathSegment 清理路径片段中的空格与非法字符
func SanitizePathSegment(name string) string {
	cleaned := strings.ReplaceAll(name, " ", "_")
	for _, ch := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		cleaned = strings.ReplaceAll(cleaned, ch, "")
	}
	return cleaned
}

// Upload 上传文件，对象名为 folder/短uuid_原始文件名，返回对象路径
func (s *Service) Upload(ctx context.Context, data []byte, originalName, contentType, folder string) (string, error) {
	shortID := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	safeName := strings.ReplaceAll(originalName, " ", "_")
	objectName := fmt.Sprintf("%s/%s_%s", folder, shortID, safeName)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传文件失败: %w", err)
	}
	s.log.Info("文件已上传", zap.String("name", originalName), zap.String("object", objectName))
	return objectName, nil
}

// GetStream 按对象路径获取文件流，调用方负责关闭
func (s *Service) GetStream(ctx context.Context, objectName string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取文件失败: %w", err)
	}
	// GetObject 延迟触发请求，先读状态确认对象存在
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("文件不存在: %w", err)
	}
	return obj, nil
}

// Delete 删除对象
func (s *Service) Delete(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	s.log.Info("文件已删除", zap.String("object", objectName))
	return nil
}
