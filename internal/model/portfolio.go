package model

import "time"

// PortfolioPage 创作者自定义的作品展示页，与项目分组无关。
type PortfolioPage struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	CreatorID uint         `json:"creator_id" gorm:"not null;index"`
	Name      string       `json:"name" gorm:"not null;size:255"`
	Models    []AssetModel `json:"models,omitempty" gorm:"many2many:portfolio_page_models;joinForeignKey:PortfolioPageID;joinReferences:ModelID"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type PortfolioPageModel struct {
	PortfolioPageID uint      `json:"portfolio_page_id" gorm:"primaryKey"`
	ModelID         uint      `json:"model_id" gorm:"primaryKey"`
	CreatedAt       time.Time `json:"created_at"`
}

// All 返回需要迁移的全部实体，db 初始化与测试共用。
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&ProjectClient{},
		&Category{},
		&ModelStatus{},
		&AssetModel{},
		&ModelVersion{},
		&ModelImage{},
		&Comment{},
		&Favourite{},
		&PortfolioPage{},
		&PortfolioPageModel{},
	}
}
