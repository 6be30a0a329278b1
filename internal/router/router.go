package router

import (
	"moyuan/internal/handlers"
	"moyuan/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	blogHandler := handlers.NewBlogHandler()
	adminHandler := handlers.NewAdminHandler()

	// 公共路由 (Public Routes)
	r.GET("/", blogHandler.Home)                                  // 首页 - 最新评论挂件
	r.GET("/p/:pid", blogHandler.PostDetail)                      // 文章页（含评论区）
	r.POST("/p/:pid/comment", blogHandler.CreateComment)          // 发表评论
	r.POST("/p/:pid/comment/:cid/reply", blogHandler.CreateReply) // 发表回复

	r.GET("/admin/login", authHandler.ShowLogin) // 登录页面
	r.POST("/admin/login", authHandler.Login)    // 提交登录
	r.GET("/admin/logout", authHandler.Logout)   // 退出登录

	// 管理后台路由 (Admin Routes)
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/comments", adminHandler.List)                       // 评论列表（分页/过滤）
		admin.GET("/comments/pending-count", adminHandler.PendingCount) // 待审角标

		admin.POST("/comments/:id/approve", adminHandler.ApproveComment) // 过审评论
		admin.POST("/comments/:id/reject", adminHandler.RejectComment)   // 驳回评论
		admin.DELETE("/comments/:id", adminHandler.DeleteComment)        // 删除评论（级联）

		admin.POST("/comments/:id/replies/:rid/approve", adminHandler.ApproveReply) // 过审回复
		admin.POST("/comments/:id/replies/:rid/reject", adminHandler.RejectReply)   // 驳回回复
		admin.DELETE("/comments/:id/replies/:rid", adminHandler.DeleteReply)        // 删除回复

		admin.POST("/comments/batch-approval", adminHandler.BatchApprove)  // 批量过审
		admin.DELETE("/comments/batch-approval", adminHandler.BatchDelete) // 批量删除
	}
}
