package handler

import (
	"mime/multipart"
	"strconv"
	"strings"

	"asset-vault-server/internal/blob"
	platformservice "asset-vault-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// 上传请求的表单字段名
const (
	fieldImages        = "images"
	fieldAsset         = "file"
	fieldCoverIndex    = "cover_index"
	fieldCoverImageID  = "cover_image_id"
	fieldRemoveImageID = "remove_image_ids"
)

func formFiles(form *multipart.Form, key string) []blob.File {
	if form == nil {
		return nil
	}
	headers := form.File[key]
	files := make([]blob.File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, blob.FromFileHeader(fh))
	}
	return files
}

func formFile(form *multipart.Form, key string) *blob.File {
	files := formFiles(form, key)
	if len(files) == 0 {
		return nil
	}
	return &files[0]
}

func optionalUint(c *gin.Context, key string) (*uint, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, platformservice.NewFieldError(key, "无效的 ID")
	}
	id := uint(v)
	return &id, nil
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, platformservice.NewFieldError(key, "无效的序号")
	}
	return &v, nil
}

func uintList(c *gin.Context, key string) ([]uint, error) {
	var out []uint
	for _, raw := range c.PostFormArray(key) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, platformservice.NewFieldError(key, "无效的 ID")
			}
			out = append(out, uint(v))
		}
	}
	return out, nil
}

func formBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(c.PostForm(key)))
	return v
}

func coverIndex(c *gin.Context) (int, error) {
	idx, err := optionalInt(c, fieldCoverIndex)
	if err != nil || idx == nil {
		return 0, err
	}
	return *idx, nil
}
