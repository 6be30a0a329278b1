package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"moyuan/internal/models"
	"moyuan/internal/services"
	"moyuan/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理后台：评论列表、逐条/批量审核、删除
type AdminHandler struct {
	store      *services.CommentStore
	moderation *services.ModerationService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		store:      services.GetCommentStore(),
		moderation: services.GetModerationService(),
	}
}

// List 评论列表，支持分页、关键词和审核状态过滤；
// 管理端能看到全部状态，公开侧只露出 Approved。
func (h *AdminHandler) List(c *gin.Context) {
	pageNo, _ := strconv.ParseInt(c.DefaultQuery("pageNo", "1"), 10, 64)
	pageSize, _ := strconv.ParseInt(c.DefaultQuery("pageSize", "20"), 10, 64)
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	page := models.Page{
		PageNo:   pageNo,
		PageSize: pageSize,
		Field:    c.Query("sortField"),
		Order:    c.Query("sortOrder"),
		Keyword:  c.Query("keyword"),
	}
	if status := models.ApprovalStatus(c.Query("status")); status.Valid() {
		page.Status = status
	}

	result, err := h.store.AdminList(c.Request.Context(), page)
	if err != nil {
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}

	views := make([]CommentView, 0, len(result.List))
	for _, comment := range result.List {
		assembled := services.AssembleThread(comment)
		if assembled.UserInfo.Picture == "" {
			assembled.UserInfo.Picture = services.ResolveAvatar(assembled.UserInfo.Email)
		}
		views = append(views, CommentView{
			Comment:     assembled,
			ContentHTML: utils.RenderMarkdown(assembled.Content),
		})
	}

	Render(c, http.StatusOK, "admin/comments.html", gin.H{
		"Comments":   views,
		"PageNo":     result.PageNo,
		"PageSize":   result.PageSize,
		"TotalPages": result.TotalPages,
		"TotalCount": result.TotalCount,
		"Status":     string(page.Status),
		"Keyword":    page.Keyword,
	})
}

// actionStatus 单条操作的统一出口：成功让 HTMX 整页刷新，
// 失败把可读文案丢回去。
func actionStatus(c *gin.Context, err error) {
	if err == nil {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusOK)
		return
	}
	if models.IsNotFound(err) {
		c.String(http.StatusNotFound, errMsg(err))
		return
	}
	code := http.StatusBadGateway
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		code = http.StatusBadRequest
	}
	c.String(code, errMsg(err))
}

// ApproveComment 过审；重复过审是幂等的成功
func (h *AdminHandler) ApproveComment(c *gin.Context) {
	actionStatus(c, h.moderation.ApproveComment(c.Request.Context(), c.Param("id")))
}

// RejectComment 驳回，原因必填
func (h *AdminHandler) RejectComment(c *gin.Context) {
	actionStatus(c, h.moderation.RejectComment(c.Request.Context(), c.Param("id"), c.PostForm("reason")))
}

// DeleteComment 删除评论并级联删除其回复
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	actionStatus(c, h.moderation.DeleteComment(c.Request.Context(), c.Param("id")))
}

// ApproveReply 过审单条回复
func (h *AdminHandler) ApproveReply(c *gin.Context) {
	actionStatus(c, h.moderation.ApproveReply(c.Request.Context(), c.Param("id"), c.Param("rid")))
}

// RejectReply 驳回单条回复
func (h *AdminHandler) RejectReply(c *gin.Context) {
	actionStatus(c, h.moderation.RejectReply(c.Request.Context(), c.Param("id"), c.Param("rid"), c.PostForm("reason")))
}

// DeleteReply 删除单条回复
func (h *AdminHandler) DeleteReply(c *gin.Context) {
	actionStatus(c, h.moderation.DeleteReply(c.Request.Context(), c.Param("id"), c.Param("rid")))
}

// BatchApprove 批量过审。非原子：逐条独立处理，
// 响应里逐 id 报告成败，部分失败不算整体失败。
func (h *AdminHandler) BatchApprove(c *gin.Context) {
	var req models.BatchApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}
	result := h.moderation.BatchApprove(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

// BatchDelete 批量删除，语义同 BatchApprove
func (h *AdminHandler) BatchDelete(c *gin.Context) {
	var req models.BatchApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}
	result := h.moderation.BatchDelete(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

// PendingCount 待审角标（HTMX 轮询用）
func (h *AdminHandler) PendingCount(c *gin.Context) {
	count, err := h.moderation.PendingCount(c.Request.Context())
	if err != nil {
		c.String(http.StatusBadGateway, "-")
		return
	}
	c.String(http.StatusOK, strconv.FormatInt(count, 10))
}
