package model

import "time"

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;unique;size:64"`
}

type ModelStatus struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;unique;size:64"`
}

// AssetModel 项目下的一个 3D 模型，版本链见 Versions。
type AssetModel struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null;size:255"`
	CategoryID *uint          `json:"category_id" gorm:"index"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	StatusID   *uint          `json:"status_id" gorm:"index"`
	Status     *ModelStatus   `json:"status,omitempty" gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL;"`
	ProjectID  uint           `json:"project_id" gorm:"not null;index"`
	Project    *Project       `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Versions   []ModelVersion `json:"versions,omitempty" gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (AssetModel) TableName() string {
	return "models"
}

type ModelVersion struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	ModelID       uint         `json:"model_id" gorm:"not null;uniqueIndex:idx_model_version"`
	Model         *AssetModel  `json:"model,omitempty" gorm:"foreignKey:ModelID"`
	Version       int          `json:"version" gorm:"not null;uniqueIndex:idx_model_version"`
	FilePath      string       `json:"file_path" gorm:"size:1024"`
	AllowDownload bool         `json:"allow_download" gorm:"not null;default:false"`
	CoverImageID  *uint        `json:"cover_image_id"`
	Images        []ModelImage `json:"images,omitempty" gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE;"`
	CreatedAt     time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type ModelImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VersionID uint      `json:"version_id" gorm:"not null;index"`
	Path      string    `json:"path" gorm:"not null;size:1024"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VersionID uint      `json:"version_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Favourite 收藏记录挂在版本上，(user_id, version_id) 唯一。
type Favourite struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_fav_user_version"`
	VersionID uint          `json:"version_id" gorm:"not null;uniqueIndex:idx_fav_user_version;index"`
	Version   *ModelVersion `json:"version,omitempty" gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time     `json:"created_at" gorm:"index"`
}
