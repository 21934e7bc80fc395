package consts

const (
	ApplicationName    = "Asset Vault"
	ApplicationVersion = "1.0.0"
)

const (
	// DefaultCategoryName 模型未设置分类或分类记录缺失时的展示名
	DefaultCategoryName = "Uncategorized"

	// DefaultStatusName 模型未设置状态或状态记录缺失时的展示名
	DefaultStatusName = "Draft"

	// PlaceholderThumbnail 版本没有任何图片时使用的占位图
	PlaceholderThumbnail = "/placeholder.svg"

	// MaxImagesPerVersion 每个版本最多保留的图片数
	MaxImagesPerVersion = 4
)

// 项目状态
const (
	ProjectStatusActive     = "Active"
	ProjectStatusComplete   = "Complete"
	ProjectStatusInProgress = "In Progress"
)

// ValidProjectStatus 判断项目状态是否为允许的枚举值。
func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusActive, ProjectStatusComplete, ProjectStatusInProgress:
		return true
	}
	return false
}
