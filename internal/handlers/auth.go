package handlers

import (
	"log"
	"net/http"
	"os"

	"moyuan/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler 管理后台登录。单一站长角色，凭证来自环境变量，
// 授权本身是外部协作方的事，这里只维护会话。
type AuthHandler struct {
	adminUser string
	adminHash string
}

func NewAuthHandler() *AuthHandler {
	user := os.Getenv("ADMIN_USER")
	if user == "" {
		user = "admin"
	}
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		if plain := os.Getenv("ADMIN_PASSWORD"); plain != "" {
			h, err := utils.HashPassword(plain)
			if err != nil {
				log.Fatalf("生成管理员密码哈希失败: %v", err)
			}
			hash = h
		} else {
			log.Println("⚠️ 未配置 ADMIN_PASSWORD/ADMIN_PASSWORD_HASH，管理后台无法登录")
		}
	}
	return &AuthHandler{adminUser: user, adminHash: hash}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "admin/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if h.adminHash == "" || username != h.adminUser || !utils.CheckPasswordHash(password, h.adminHash) {
		Render(c, http.StatusUnauthorized, "admin/login.html", gin.H{"Error": "用户名或密码错误"})
		return
	}

	session := sessions.Default(c)
	session.Set("admin_user", username)
	if err := session.Save(); err != nil {
		RenderError(c, http.StatusInternalServerError, "保存会话失败")
		return
	}
	c.Redirect(http.StatusFound, "/admin/comments")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}
