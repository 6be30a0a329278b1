package services

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"moyuan/internal/models"
)

// 字段级校验复用 gin 同款的 validator，邮箱等格式不自己造轮子
var validate = validator.New()

// ValidateCommentInput 提交前的本地校验：先裁剪所有字符串字段的
// 首尾空白，再做字段检查。返回规范化后的输入或第一处校验错误。
// 纯函数，校验失败属于预期分支，不 panic 也不打日志。
//
// 对已规范化的输入再次调用结果不变（幂等）。
func ValidateCommentInput(req models.CommentRequest) (models.CommentRequest, *models.ValidationError) {
	req.PostID = strings.TrimSpace(req.PostID)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Website = strings.TrimSpace(req.Website)
	req.Content = strings.TrimSpace(req.Content)

	if req.Content == "" {
		return req, &models.ValidationError{Field: "content", Message: "评论内容不能为空"}
	}
	if req.Username == "" {
		return req, &models.ValidationError{Field: "username", Message: "昵称不能为空"}
	}
	if req.Email == "" {
		return req, &models.ValidationError{Field: "email", Message: "邮箱不能为空"}
	}
	if err := validate.Var(req.Email, "email"); err != nil {
		return req, &models.ValidationError{Field: "email", Message: "邮箱格式不正确"}
	}
	if req.Website != "" && !strings.HasPrefix(req.Website, "https://") {
		return req, &models.ValidationError{Field: "website", Message: "个人网站必须以 https:// 开头"}
	}
	return req, nil
}

// ValidateReplyInput 回复的校验规则与评论一致，额外裁剪 replyToId
func ValidateReplyInput(req models.ReplyRequest) (models.ReplyRequest, *models.ValidationError) {
	normalized, err := ValidateCommentInput(req.CommentRequest)
	req.CommentRequest = normalized
	req.ReplyToID = strings.TrimSpace(req.ReplyToID)
	if err != nil {
		return req, err
	}
	return req, nil
}
