package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errEscapesRoot = errors.New("非法路径: 对象键超出存储目录")

// objectPath 把以 / 分隔的对象键解析为 root 下的绝对路径。
// 键中的每一级已存在的目录都不能是符号链接，尚未创建的部分不检查。
func objectPath(root, key string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}
	if key == "" || strings.HasPrefix(key, "/") || filepath.IsAbs(filepath.FromSlash(key)) {
		return "", errEscapesRoot
	}

	current := rootAbs
	for _, part := range strings.Split(key, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", errEscapesRoot
		}
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("检查路径失败: %w", err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("检测到符号链接穿透风险: %s", current)
		}
	}
	if current == rootAbs {
		return "", errEscapesRoot
	}
	return current, nil
}
