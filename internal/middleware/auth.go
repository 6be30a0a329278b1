package middleware

import (
	"net/http"

	"moyuan/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const AdminKey = "admin"
const PendingCountKey = "pending_count"

// AdminRequired 管理后台登录态校验，未登录跳转登录页
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("admin_user") == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadAdmin 把登录的管理员和待审角标数放进上下文。
// 角标数每次现查（count(status=Pending) 的派生读取），查询失败不拦截页面。
func LoadAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		admin := session.Get("admin_user")
		if admin != nil {
			c.Set(AdminKey, admin.(string))
			if count, err := services.GetModerationService().PendingCount(c.Request.Context()); err == nil {
				c.Set(PendingCountKey, count)
			}
		}
		c.Next()
	}
}
