package services

import (
	"context"
	"strings"

	"moyuan/internal/models"
)

// ModerationService 审核状态机。
// 状态只有 Pending / Approved / Rejected 三种，删除是状态之外的动作。
// 所有迁移幂等：对已是目标状态的实体重复操作视为成功，不报错。
type ModerationService struct {
	store *CommentStore
}

// NewModerationService 创建审核服务，供测试注入
func NewModerationService(store *CommentStore) *ModerationService {
	return &ModerationService{store: store}
}

// 全局单例
var moderationService *ModerationService

// GetModerationService 获取审核服务单例
func GetModerationService() *ModerationService {
	if moderationService == nil {
		moderationService = NewModerationService(GetCommentStore())
	}
	return moderationService
}

// ApproveComment Pending|Rejected -> Approved
func (s *ModerationService) ApproveComment(ctx context.Context, id string) error {
	return s.store.ApproveComment(ctx, id)
}

// RejectComment Pending|Approved -> Rejected。
// reason 只要求非空，内容不做校验，原样转发远端存档。
func (s *ModerationService) RejectComment(ctx context.Context, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &models.ValidationError{Field: "reason", Message: "驳回原因不能为空"}
	}
	return s.store.RejectComment(ctx, id, reason)
}

// DeleteComment 任意状态 -> 移除，级联删除其下全部回复
func (s *ModerationService) DeleteComment(ctx context.Context, id string) error {
	return s.store.DeleteComment(ctx, id)
}

// ApproveReply 过审单条回复
func (s *ModerationService) ApproveReply(ctx context.Context, commentID, replyID string) error {
	return s.store.ApproveReply(ctx, commentID, replyID)
}

// RejectReply 驳回单条回复
func (s *ModerationService) RejectReply(ctx context.Context, commentID, replyID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &models.ValidationError{Field: "reason", Message: "驳回原因不能为空"}
	}
	return s.store.RejectReply(ctx, commentID, replyID, reason)
}

// DeleteReply 删除单条回复，不影响兄弟回复
func (s *ModerationService) DeleteReply(ctx context.Context, commentID, replyID string) error {
	return s.store.DeleteReply(ctx, commentID, replyID)
}

// PendingCount 待审角标数，派生读取
func (s *ModerationService) PendingCount(ctx context.Context) (int64, error) {
	return s.store.PendingCount(ctx)
}

// BatchResult 批量操作的聚合结果。批量不保证原子性：
// 每个 id 独立处理，失败互不影响，调用方拿到逐条成败。
type BatchResult struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"` // id -> 可展示的失败原因
}

func newBatchResult() BatchResult {
	return BatchResult{Succeeded: []string{}, Failed: map[string]string{}}
}

// Ok 整批是否全部成功
func (r BatchResult) Ok() bool { return len(r.Failed) == 0 }

// replyKey 批量结果里回复的标识：归属评论 id + "/" + 回复 id
func replyKey(commentID, replyID string) string {
	return commentID + "/" + replyID
}

// BatchApprove 批量过审。先处理选中的评论，再处理按评论分组的回复，
// 逐条调用单 id 接口以获得每个 id 的独立结果。
func (s *ModerationService) BatchApprove(ctx context.Context, req models.BatchApprovalRequest) BatchResult {
	result := newBatchResult()
	for _, id := range req.CommentIDs {
		if err := s.ApproveComment(ctx, id); err != nil {
			result.Failed[id] = models.UserMessage(err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	for commentID, replyIDs := range req.Replies {
		for _, replyID := range replyIDs {
			key := replyKey(commentID, replyID)
			if err := s.ApproveReply(ctx, commentID, replyID); err != nil {
				result.Failed[key] = models.UserMessage(err)
				continue
			}
			result.Succeeded = append(result.Succeeded, key)
		}
	}
	return result
}

// BatchDelete 批量删除，语义同 BatchApprove：逐条独立，非原子
func (s *ModerationService) BatchDelete(ctx context.Context, req models.BatchApprovalRequest) BatchResult {
	result := newBatchResult()
	for _, id := range req.CommentIDs {
		if err := s.DeleteComment(ctx, id); err != nil {
			result.Failed[id] = models.UserMessage(err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	for commentID, replyIDs := range req.Replies {
		for _, replyID := range replyIDs {
			key := replyKey(commentID, replyID)
			if err := s.DeleteReply(ctx, commentID, replyID); err != nil {
				result.Failed[key] = models.UserMessage(err)
				continue
			}
			result.Succeeded = append(result.Succeeded, key)
		}
	}
	return result
}
