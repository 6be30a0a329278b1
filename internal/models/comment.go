package models

// ApprovalStatus 评论/回复的审核状态，远端 API 以字符串枚举传输
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "Pending"
	StatusApproved ApprovalStatus = "Approved"
	StatusRejected ApprovalStatus = "Rejected"
)

// Valid 仅三种状态，其他一律视为非法
func (s ApprovalStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// PostInfo 评论所属文章的冗余信息，创建后只读
type PostInfo struct {
	PostID    string `json:"post_id"`
	PostTitle string `json:"post_title"`
	PostURL   string `json:"post_url"`
}

// UserInfo 评论者身份，Picture 由邮箱派生（见 services.ResolveAvatar）
type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Website  string `json:"website,omitempty"`
	Picture  string `json:"picture"`
}

// Comment 顶级评论，挂在唯一一篇文章下
type Comment struct {
	ID             string         `json:"id"`
	PostInfo       PostInfo       `json:"post_info"`
	Content        string         `json:"content"`
	UserInfo       UserInfo       `json:"user_info"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	CreatedAt      int64          `json:"created_at"`
	Replies        []Reply        `json:"replies"` // 插入顺序即时间顺序
}

// Reply 评论下的回复，可以再回复同一评论下的另一条回复
type Reply struct {
	ID        string `json:"id"`
	CommentID string `json:"comment_id"`
	Content   string `json:"content"`
	Name      string `json:"name"`
	Picture   string `json:"picture"`
	Website   string `json:"website,omitempty"`
	// ReplyToID 为空表示回复楼主；否则指向同一评论下的另一条回复
	ReplyToID string `json:"reply_to_id"`
	// ReplyTo 写入时冗余的被回复人昵称，目标被删后依然可读
	ReplyTo        string         `json:"reply_to"`
	ReplyTime      int64          `json:"reply_time"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	// RepliedContent 读取时在同批回复里按 ReplyToID 解析出的引用原文，不落库
	RepliedContent string `json:"replied_content,omitempty"`
}

// LatestComment 全站最新评论（首页挂件用）
type LatestComment struct {
	PostInfo
	Picture   string `json:"picture"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// CommentRequest 发表评论的提交表单
type CommentRequest struct {
	PostID   string `json:"postId" form:"postId"`
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Website  string `json:"website" form:"website"`
	Content  string `json:"content" form:"content"`
}

// ReplyRequest 发表回复的提交表单，ReplyToId 为空表示回复楼主
type ReplyRequest struct {
	CommentRequest
	ReplyToID string `json:"replyToId" form:"replyToId"`
}

// BatchApprovalRequest 批量审核/删除请求。
// Replies 的 key 是 commentId，value 是该评论下被选中的 reply id 列表。
type BatchApprovalRequest struct {
	CommentIDs []string            `json:"comment_ids"`
	Replies    map[string][]string `json:"replies"`
}

// Page 管理端分页查询参数
type Page struct {
	PageNo   int64  `form:"pageNo"`
	PageSize int64  `form:"pageSize"`
	Field    string `form:"sortField,omitempty"`
	Order    string `form:"sortOrder,omitempty"`
	Keyword  string `form:"keyword,omitempty"`
	// Status 非空时按审核状态过滤
	Status ApprovalStatus `form:"status,omitempty"`
}

// PageResult 远端返回的分页结果
type PageResult[T any] struct {
	PageNo     int64 `json:"pageNo"`
	PageSize   int64 `json:"pageSize"`
	TotalPages int64 `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
	List       []T   `json:"list"`
}

// ListResult 远端返回的非分页列表
type ListResult[T any] struct {
	List []T `json:"list"`
}

// IDResult 创建类接口返回的新实体 id
type IDResult struct {
	ID string `json:"id"`
}

// Post 文章元信息（外部协作方，仅取评论页需要的字段）
type Post struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	URL              string `json:"url"`
	Author           string `json:"author"`
	IsCommentAllowed bool   `json:"is_comment_allowed"`
}
