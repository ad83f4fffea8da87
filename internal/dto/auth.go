package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ── 认证模块 DTO ──

// SignInRequest 登录请求
type SignInRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate 校验登录请求
func (r *SignInRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// SignUpRequest 注册请求
// role 沿用集合形式，当前要求恰好包含一个 teacher 或 student
type SignUpRequest struct {
	Name     string   `json:"name"     binding:"required"`
	Surname  string   `json:"surname"  binding:"required"`
	Email    string   `json:"email"    binding:"required"`
	Password string   `json:"password" binding:"required"`
	Role     []string `json:"role"     binding:"required"`
}

// Validate 校验注册请求
func (r *SignUpRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	for i := range r.Role {
		r.Role[i] = strings.ToLower(strings.TrimSpace(r.Role[i]))
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 50)),
		validation.Field(&r.Surname, validation.Required, validation.RuneLength(2, 50)),
		validation.Field(&r.Email, validation.Required, validation.RuneLength(0, 100), is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Role,
			validation.Required,
			validation.Length(1, 1),
			validation.Each(validation.In("teacher", "student")),
		),
	)
}

// ── 认证模块响应 ──

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // Access Token 有效期（秒）
	User        UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
