package handlers

import (
	"moyuan/internal/middleware"
	"moyuan/internal/models"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like the logged-in admin
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if admin, exists := c.Get(middleware.AdminKey); exists {
		obj["Admin"] = admin
		if count, ok := c.Get(middleware.PendingCountKey); ok {
			obj["PendingCount"] = count.(int64)
		} else {
			obj["PendingCount"] = int64(0)
		}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError 渲染错误页
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// errMsg 把引擎错误转成用户可读文案
func errMsg(err error) string {
	return models.UserMessage(err)
}
