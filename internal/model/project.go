package model

import "time"

type Project struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"not null;size:255"`
	StartDate *time.Time   `json:"start_date"`
	Status    string       `json:"status" gorm:"not null;size:32;default:'Active'"`
	CreatorID uint         `json:"creator_id" gorm:"not null;index"`
	Creator   *User        `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID;constraint:OnDelete:CASCADE;"`
	Models    []AssetModel `json:"models,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ProjectClient 项目与客户的分配关系。
type ProjectClient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;uniqueIndex:idx_project_client"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_project_client;index"`
	Project   *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at"`
}
