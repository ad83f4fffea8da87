package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

// 认证中间件写入 gin.Context 的键
const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// MustGetPrincipal 从 Gin 上下文中提取当前主体。
// 如果 JWT 中间件未正确注入 user_id / role，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetPrincipal(c *gin.Context) (policy.Principal, bool) {
	uid, ok := c.Get(CtxUserID)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return policy.Principal{}, false
	}
	id, ok := uid.(int64)
	if !ok || id <= 0 {
		response.Unauthorized(c, 10002, "未认证")
		return policy.Principal{}, false
	}

	v, _ := c.Get(CtxRole)
	s, _ := v.(string)
	role, ok := policy.ParseRole(s)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return policy.Principal{}, false
	}

	return policy.Principal{UserID: id, Role: role}, true
}

// mustGetToken 提取当前 Token 的 jti 与过期时间（登出使用）
func mustGetToken(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(CtxTokenJTI)
	exp, ok := c.Get(CtxTokenExp)
	t, isTime := exp.(time.Time)
	if jti == "" || !ok || !isTime {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}
	return jti, t, true
}

// parseID 解析路径参数中的正整数 ID，失败时写入 400 响应
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "无效的 "+name)
		return 0, false
	}
	return id, true
}

// bindJSON 绑定请求体，失败时写入 400 响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return false
	}
	return true
}
