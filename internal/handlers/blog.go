package handlers

import (
	"html/template"
	"net/http"
	"os"

	"moyuan/internal/models"
	"moyuan/internal/services"
	"moyuan/internal/utils"

	"github.com/gin-gonic/gin"
)

// BlogHandler 公开侧：文章评论区和最新评论挂件
type BlogHandler struct {
	store *services.CommentStore
	posts *services.PostService
	mail  *services.MailService
}

func NewBlogHandler() *BlogHandler {
	return &BlogHandler{
		store: services.GetCommentStore(),
		posts: services.GetPostService(),
		mail:  services.GetMailService(),
	}
}

// ReplyView 单条回复的展示模型
type ReplyView struct {
	models.Reply
	ContentHTML template.HTML
	IsAuthor    bool
}

// CommentView 单条评论（含组装好的回复串）的展示模型
type CommentView struct {
	models.Comment
	ContentHTML template.HTML
	IsAuthor    bool
	ReplyViews  []ReplyView
}

// buildCommentView 组装展示模型：先解析回复引用，再补头像和作者角标，
// 最后把 Markdown 原文渲染成安全 HTML。
func buildCommentView(comment models.Comment, articleAuthor string) CommentView {
	assembled := services.AssembleThread(comment)

	if assembled.UserInfo.Picture == "" {
		assembled.UserInfo.Picture = services.ResolveAvatar(assembled.UserInfo.Email)
	}

	view := CommentView{
		Comment:     assembled,
		ContentHTML: utils.RenderMarkdown(assembled.Content),
		IsAuthor:    services.IsAuthor(assembled.UserInfo.Username, articleAuthor),
		ReplyViews:  make([]ReplyView, 0, len(assembled.Replies)),
	}
	for _, reply := range assembled.Replies {
		view.ReplyViews = append(view.ReplyViews, ReplyView{
			Reply:       reply,
			ContentHTML: utils.RenderMarkdown(reply.Content),
			IsAuthor:    services.IsAuthor(reply.Name, articleAuthor),
		})
	}
	return view
}

// Home 首页，带全站最新评论挂件
func (h *BlogHandler) Home(c *gin.Context) {
	latest, err := h.store.Latest(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}
	for i := range latest {
		if latest[i].Picture == "" {
			latest[i].Picture = services.ResolveAvatar("")
		}
	}
	Render(c, http.StatusOK, "home.html", gin.H{"LatestComments": latest})
}

// PostDetail 文章页：文章元信息 + 组装好的评论串 + 评论表单
func (h *BlogHandler) PostDetail(c *gin.Context) {
	pid := c.Param("pid")

	post, err := h.posts.GetPost(c.Request.Context(), pid)
	if err != nil {
		if models.IsNotFound(err) {
			RenderError(c, http.StatusNotFound, "文章不存在")
			return
		}
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}

	comments, err := h.store.FindByPostID(c.Request.Context(), pid)
	if err != nil {
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}

	author := post.Author
	if author == "" {
		author = os.Getenv("SITE_AUTHOR")
	}

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, buildCommentView(comment, author))
	}

	Render(c, http.StatusOK, "post.html", gin.H{
		"Post":      post,
		"Comments":  views,
		"Submitted": c.Query("submitted") == "1",
	})
}

// CreateComment 发表评论。本地校验通过才会出网，
// 远端固定以 Pending 落库，过审前公开侧不可见。
func (h *BlogHandler) CreateComment(c *gin.Context) {
	pid := c.Param("pid")

	req := models.CommentRequest{
		PostID:   pid,
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Website:  c.PostForm("website"),
		Content:  c.PostForm("content"),
	}
	req, vErr := services.ValidateCommentInput(req)
	if vErr != nil {
		RenderError(c, http.StatusBadRequest, vErr.Message)
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), pid)
	if err != nil {
		if models.IsNotFound(err) {
			RenderError(c, http.StatusNotFound, "文章不存在")
			return
		}
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}
	if !post.IsCommentAllowed {
		RenderError(c, http.StatusForbidden, "本文已关闭评论")
		return
	}

	if _, err = h.store.Create(c.Request.Context(), req); err != nil {
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}

	h.mail.NotifyNewComment(post.Title, req.Username, req.Content)
	c.Redirect(http.StatusFound, "/p/"+pid+"?submitted=1#comments")
}

// CreateReply 发表回复，replyToId 为空表示回复楼主
func (h *BlogHandler) CreateReply(c *gin.Context) {
	pid := c.Param("pid")
	commentID := c.Param("cid")

	req := models.ReplyRequest{
		CommentRequest: models.CommentRequest{
			PostID:   pid,
			Username: c.PostForm("username"),
			Email:    c.PostForm("email"),
			Website:  c.PostForm("website"),
			Content:  c.PostForm("content"),
		},
		ReplyToID: c.PostForm("replyToId"),
	}
	req, vErr := services.ValidateReplyInput(req)
	if vErr != nil {
		RenderError(c, http.StatusBadRequest, vErr.Message)
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), pid)
	if err != nil {
		if models.IsNotFound(err) {
			RenderError(c, http.StatusNotFound, "文章不存在")
			return
		}
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}
	if !post.IsCommentAllowed {
		RenderError(c, http.StatusForbidden, "本文已关闭评论")
		return
	}

	if _, err = h.store.CreateReply(c.Request.Context(), commentID, req); err != nil {
		if models.IsNotFound(err) {
			RenderError(c, http.StatusNotFound, "评论不存在或已被删除")
			return
		}
		RenderError(c, http.StatusBadGateway, errMsg(err))
		return
	}

	h.mail.NotifyNewComment(post.Title, req.Username, req.Content)
	c.Redirect(http.StatusFound, "/p/"+pid+"?submitted=1#comments")
}
