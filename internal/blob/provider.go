package blob

import (
	"asset-vault-server/internal/config"
	"context"
	"log"
)

// NewUploaderFromConfig 按 storage.driver 选择实现，s3 初始化失败时回退本地存储。
func NewUploaderFromConfig() Uploader {
	cfg := config.Get().Storage
	if cfg.Driver == "s3" {
		store, err := NewS3Store(context.Background(), cfg.S3)
		if err == nil {
			log.Printf("✅ 对象存储已就绪: bucket=%s", cfg.S3.Bucket)
			return store
		}
		log.Printf("⚠️ 对象存储初始化失败，回退到本地存储: %v", err)
	}
	return NewLocalStore(cfg.Path, cfg.URLPrefix)
}
