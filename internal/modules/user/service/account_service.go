package service

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"asset-vault-server/internal/config"
	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/user/dto"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{4,20}$`)

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 64 {
		return platformservice.NewFieldError("password", "密码长度需在 8-64 位之间")
	}
	return nil
}

// Register 注册创作者或客户账号，需管理员审批后才能登录。
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(username) {
		return nil, platformservice.NewFieldError("username", "用户名需为 4-20 位字母、数字或下划线")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Role != consts.RoleCreator && req.Role != consts.RoleClient {
		return nil, platformservice.NewFieldError("role", "角色只能是 creator 或 client")
	}

	exists, err := s.userStore.UsernameExists(ctx, username)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	if exists {
		return nil, platformservice.NewConflictError("用户名已存在")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformservice.NewInternalError("密码加密失败")
	}
	user := &model.User{
		Username: username,
		Password: string(hashed),
		Email:    strings.TrimSpace(req.Email),
		Role:     req.Role,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return user, nil
}

// Login 校验密码与审批状态并签发令牌。
func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userStore.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewUnauthorizedError("用户名或密码错误")
		}
		return nil, platformservice.WrapInternal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, platformservice.NewUnauthorizedError("用户名或密码错误")
	}
	if !user.Approved {
		return nil, platformservice.NewForbiddenError("账号尚未通过审批")
	}

	hours := config.Get().JWT.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	token, err := auth.GenerateLoginToken(auth.CurrentUser{ID: user.ID, Username: user.Username, Role: user.Role}, time.Duration(hours)*time.Hour)
	if err != nil {
		return nil, platformservice.NewInternalError("生成令牌失败")
	}
	return &dto.LoginResponse{Token: token, User: ToResponse(user)}, nil
}

// EnsureAdmin 不存在同名账号时创建已审批的管理员，用于首次部署。
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	exists, err := s.userStore.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userStore.Create(ctx, &model.User{
		Username: username,
		Password: string(hashed),
		Role:     consts.RoleAdmin,
		Approved: true,
	}); err != nil {
		return err
	}
	log.Printf("✅ 已创建管理员账号: %s", username)
	return nil
}

// IsApproved 供鉴权中间件确认账号仍处于已审批状态。
func (s *Service) IsApproved(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return user.Approved, nil
}

func ToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Approved:  u.Approved,
		CreatedAt: u.CreatedAt,
	}
}
