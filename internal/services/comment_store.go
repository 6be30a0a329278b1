package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"moyuan/internal/models"
)

// CommentStore 评论存取器：唯一允许和远端 API 对话的组件，
// 只做请求整形，不做任何业务判断。
type CommentStore struct {
	api *APIClient
}

// NewCommentStore 创建存取器，供测试注入假远端
func NewCommentStore(api *APIClient) *CommentStore {
	return &CommentStore{api: api}
}

// 全局单例
var commentStore *CommentStore

// GetCommentStore 获取评论存取器单例
func GetCommentStore() *CommentStore {
	if commentStore == nil {
		commentStore = NewCommentStore(GetAPIClient())
	}
	return commentStore
}

// FindByPostID 公开侧：取一篇文章下已过审的评论（含回复，回复按时间正序）
func (s *CommentStore) FindByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	result, err := get[models.ListResult[models.Comment]](ctx, s.api, "/comments/id/"+url.PathEscape(postID), nil)
	if err != nil {
		return nil, err
	}
	return result.List, nil
}

// Latest 全站最新评论，首页挂件用
func (s *CommentStore) Latest(ctx context.Context) ([]models.LatestComment, error) {
	result, err := get[models.ListResult[models.LatestComment]](ctx, s.api, "/comments/latest", nil)
	if err != nil {
		return nil, err
	}
	return result.List, nil
}

// Create 发表评论，远端固定以 Pending 状态落库并分配 id
func (s *CommentStore) Create(ctx context.Context, req models.CommentRequest) (string, error) {
	result, err := post[models.IDResult](ctx, s.api, "/comments", req)
	if err != nil {
		return "", err
	}
	return result.ID, nil
}

// CreateReply 发表回复；commentId 不存在时远端返回 NotFound
func (s *CommentStore) CreateReply(ctx context.Context, commentID string, req models.ReplyRequest) (string, error) {
	path := fmt.Sprintf("/comments/%s/replies", url.PathEscape(commentID))
	result, err := post[models.IDResult](ctx, s.api, path, req)
	if err != nil {
		return "", err
	}
	return result.ID, nil
}

// AdminList 管理端分页列表，含全部审核状态
func (s *CommentStore) AdminList(ctx context.Context, page models.Page) (models.PageResult[models.Comment], error) {
	query := url.Values{}
	query.Set("pageNo", strconv.FormatInt(page.PageNo, 10))
	query.Set("pageSize", strconv.FormatInt(page.PageSize, 10))
	if page.Field != "" {
		query.Set("sortField", page.Field)
	}
	if page.Order != "" {
		query.Set("sortOrder", page.Order)
	}
	if page.Keyword != "" {
		query.Set("keyword", page.Keyword)
	}
	if page.Status != "" {
		query.Set("status", string(page.Status))
	}
	return get[models.PageResult[models.Comment]](ctx, s.api, "/admin-api/comments", query)
}

// PendingCount 待审数量。按设计这是一次派生读取（count(status=Pending)），
// 引擎自身不维护任何计数器。
func (s *CommentStore) PendingCount(ctx context.Context) (int64, error) {
	result, err := s.AdminList(ctx, models.Page{PageNo: 1, PageSize: 1, Status: models.StatusPending})
	if err != nil {
		return 0, err
	}
	return result.TotalCount, nil
}

// ApproveComment 过审评论
func (s *CommentStore) ApproveComment(ctx context.Context, id string) error {
	path := fmt.Sprintf("/admin-api/comments/%s/approval", url.PathEscape(id))
	_, err := put[any](ctx, s.api, path, nil)
	return err
}

// RejectComment 驳回评论，reason 透传给远端存档
func (s *CommentStore) RejectComment(ctx context.Context, id, reason string) error {
	path := fmt.Sprintf("/admin-api/comments/%s/disapproval", url.PathEscape(id))
	_, err := put[any](ctx, s.api, path, map[string]string{"reason": reason})
	return err
}

// DeleteComment 删除评论，远端会级联删除其全部回复
func (s *CommentStore) DeleteComment(ctx context.Context, id string) error {
	_, err := del[any](ctx, s.api, "/admin-api/comments/"+url.PathEscape(id), nil)
	return err
}

// ApproveReply 过审回复
func (s *CommentStore) ApproveReply(ctx context.Context, commentID, replyID string) error {
	path := fmt.Sprintf("/admin-api/comments/%s/replies/%s/approval", url.PathEscape(commentID), url.PathEscape(replyID))
	_, err := put[any](ctx, s.api, path, nil)
	return err
}

// RejectReply 驳回回复
func (s *CommentStore) RejectReply(ctx context.Context, commentID, replyID, reason string) error {
	path := fmt.Sprintf("/admin-api/comments/%s/replies/%s/disapproval", url.PathEscape(commentID), url.PathEscape(replyID))
	_, err := put[any](ctx, s.api, path, map[string]string{"reason": reason})
	return err
}

// DeleteReply 删除单条回复；兄弟回复对它的 reply_to_id 会悬空，
// 读取侧由 AssembleThread 容忍（引用缺失但昵称仍可读）。
func (s *CommentStore) DeleteReply(ctx context.Context, commentID, replyID string) error {
	path := fmt.Sprintf("/admin-api/comments/%s/replies/%s", url.PathEscape(commentID), url.PathEscape(replyID))
	_, err := del[any](ctx, s.api, path, nil)
	return err
}
