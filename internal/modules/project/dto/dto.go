package dto

import "time"

type CreateProjectRequest struct {
	Name      string     `json:"name" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	Status    string     `json:"status"`
}

// UpdateProjectRequest 为 nil 的字段不修改；ClearStartDate 为 true 时清空开始日期。
type UpdateProjectRequest struct {
	Name           *string    `json:"name"`
	StartDate      *time.Time `json:"start_date"`
	ClearStartDate bool       `json:"clear_start_date"`
	Status         *string    `json:"status"`
}

type AssignClientRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type ClientResponse struct {
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	AssignedAt time.Time `json:"assigned_at"`
}
