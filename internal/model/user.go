package model

import (
	"time"

	"gorm.io/gorm"
)

// User 平台账号。角色见 consts.Role*，Approved 由管理员审批后置为 true。
type User struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Username  string         `json:"username" gorm:"unique;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Email     string         `json:"email" gorm:"index;size:255"`
	Role      string         `json:"role" gorm:"not null;index;size:16"`
	Approved  bool           `json:"approved" gorm:"not null;default:false;index"`
}
