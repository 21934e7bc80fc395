package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore 将文件写入本地目录，通过静态路由以 urlPrefix 对外提供。
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root, urlPrefix string) *LocalStore {
	if root == "" {
		root = "uploads/assets"
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Upload(ctx context.Context, pathHint string, file File) (string, error) {
	return s.put(ctx, objectKey(pathHint, file.Name), file)
}

func (s *LocalStore) UploadBatch(ctx context.Context, pathHint string, files []File) BatchResult {
	return uploadSequential(ctx, pathHint, files, s.put)
}

func (s *LocalStore) put(ctx context.Context, key string, file File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst, err := objectPath(s.root, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("无法创建存储目录: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("无法读取上传文件: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("无法创建文件: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("文件保存失败: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("文件保存失败: %w", err)
	}
	return s.urlPrefix + key, nil
}
