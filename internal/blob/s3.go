package blob

import (
	"asset-vault-server/internal/config"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store 上传到 S3 兼容的对象存储。
type S3Store struct {
	uploader      *manager.Uploader
	bucket        string
	publicBaseURL string
}

func NewS3Store(ctx context.Context, cfg config.S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("未配置 storage.s3.bucket")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = publicBase(cfg)
	}
	return &S3Store{
		uploader:      manager.NewUploader(client, func(u *manager.Uploader) { u.PartSize = 10 * 1024 * 1024 }),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(base, "/"),
	}, nil
}

func publicBase(cfg config.S3Config) string {
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

func (s *S3Store) Upload(ctx context.Context, pathHint string, file File) (string, error) {
	return s.put(ctx, objectKey(pathHint, file.Name), file)
}

func (s *S3Store) UploadBatch(ctx context.Context, pathHint string, files []File) BatchResult {
	return uploadSequential(ctx, pathHint, files, s.put)
}

func (s *S3Store) put(ctx context.Context, key string, file File) (string, error) {
	body, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("无法读取上传文件: %w", err)
	}
	defer func() { _ = body.Close() }()

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if file.ContentType != "" {
		in.ContentType = aws.String(file.ContentType)
	}
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		return "", err
	}
	return s.publicBaseURL + "/" + escapeKey(key), nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
