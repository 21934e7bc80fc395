package utils

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

var allowedImageTypes = map[string]map[string]bool{
	"image/jpeg": {".jpg": true, ".jpeg": true},
	"image/png":  {".png": true},
	"image/gif":  {".gif": true},
	"image/webp": {".webp": true},
}

var allowedAssetExts = map[string]bool{
	".glb":  true,
	".gltf": true,
	".fbx":  true,
	".obj":  true,
	".stl":  true,
	".usdz": true,
	".zip":  true,
}

// ValidateImageContent 按文件头判断预览图真实类型是否与扩展名一致。
func ValidateImageContent(reader io.Reader, filename string) (bool, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	buffer := make([]byte, 512)
	n, err := io.ReadFull(reader, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, "读取文件内容失败"
	}

	contentType := http.DetectContentType(buffer[:n])
	if exts, ok := allowedImageTypes[contentType]; ok && exts[ext] {
		return true, ""
	}
	return false, "文件真实类型(" + contentType + ")与扩展名(" + ext + ")不匹配或不支持"
}

// ValidateAssetFilename 模型文件只按扩展名校验，不解析内容。
func ValidateAssetFilename(filename string) (bool, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false, "无法识别文件类型"
	}
	if !allowedAssetExts[ext] {
		return false, "不支持的模型文件类型: " + ext
	}
	return true, ""
}
