// Package blob 文件上传协作方：把图片与模型文件写入存储并返回可公开访问的 URL。
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// File 待上传的文件。Open 每次调用都应返回从头读取的新 Reader。
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func FromFileHeader(fh *multipart.FileHeader) File {
	return File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func FromBytes(name, contentType string, data []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// BatchResult 批量上传结果。URLs 与输入文件一一对应、顺序一致；
// Success 为 false 时 URLs 只包含失败前已完成的部分，调用方不得据此做对应。
type BatchResult struct {
	Success bool
	URLs    []string
	Err     error
}

type Uploader interface {
	Upload(ctx context.Context, pathHint string, file File) (string, error)
	UploadBatch(ctx context.Context, pathHint string, files []File) BatchResult
}

type putFunc func(ctx context.Context, key string, file File) (string, error)

// uploadSequential 逐个上传，保证输出顺序与输入一致；遇到第一个错误即停止。
func uploadSequential(ctx context.Context, pathHint string, files []File, put putFunc) BatchResult {
	urls := make([]string, 0, len(files))
	for i, f := range files {
		url, err := put(ctx, objectKey(pathHint, f.Name), f)
		if err != nil {
			return BatchResult{URLs: urls, Err: fmt.Errorf("第 %d 个文件上传失败: %w", i+1, err)}
		}
		urls = append(urls, url)
	}
	return BatchResult{Success: true, URLs: urls}
}

// objectKey 生成 "<hint>/<uuid><ext>" 形式的对象键，hint 中的 ".." 与前导斜杠会被清理。
func objectKey(pathHint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	hint := path.Clean("/" + strings.ReplaceAll(pathHint, "\\", "/"))
	hint = strings.TrimPrefix(hint, "/")
	name := uuid.New().String() + ext
	if hint == "" {
		return name
	}
	return hint + "/" + name
}
