package consts

// 账号角色
const (
	RoleCreator = "creator"
	RoleClient  = "client"
	RoleAdmin   = "admin"
)
