package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"moyuan/internal/models"
)

// fakeRemote 测试用的内存版远端博客 API：
// 评论固定以 Pending 落库、审核幂等、删除评论级联删回复、
// 统一 {code,message,data} 信封。语义与真实远端一致，
// 让生命周期场景可以端到端跑完。
type fakeRemote struct {
	mu    sync.Mutex
	seq   int
	posts map[string]models.Post
	byID  map[string]*models.Comment
	order []string // 评论插入顺序

	server *httptest.Server
}

func newFakeRemote(t *testing.T) *fakeRemote {
	f := &fakeRemote{
		posts: map[string]models.Post{},
		byID:  map[string]*models.Comment{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts/{id}", f.getPost)
	mux.HandleFunc("GET /comments/latest", f.latest)
	mux.HandleFunc("GET /comments/id/{postId}", f.publicList)
	mux.HandleFunc("POST /comments", f.createComment)
	mux.HandleFunc("POST /comments/{id}/replies", f.createReply)
	mux.HandleFunc("GET /admin-api/comments", f.adminList)
	mux.HandleFunc("PUT /admin-api/comments/{id}/approval", f.transitionComment(models.StatusApproved))
	mux.HandleFunc("PUT /admin-api/comments/{id}/disapproval", f.transitionComment(models.StatusRejected))
	mux.HandleFunc("DELETE /admin-api/comments/{id}", f.deleteComment)
	mux.HandleFunc("PUT /admin-api/comments/{id}/replies/{rid}/approval", f.transitionReply(models.StatusApproved))
	mux.HandleFunc("PUT /admin-api/comments/{id}/replies/{rid}/disapproval", f.transitionReply(models.StatusRejected))
	mux.HandleFunc("DELETE /admin-api/comments/{id}/replies/{rid}", f.deleteReply)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRemote) store() *CommentStore {
	return NewCommentStore(NewAPIClient(f.server.URL, "test-token"))
}

func (f *fakeRemote) addPost(p models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[p.ID] = p
}

func writeOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"code": 0, "message": "success", "data": data})
}

func writeErr(w http.ResponseWriter, status, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"code": code, "message": message})
}

func (f *fakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeRemote) getPost(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[r.PathValue("id")]
	if !ok {
		writeErr(w, http.StatusNotFound, 404, "文章不存在")
		return
	}
	writeOK(w, post)
}

func (f *fakeRemote) createComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, 400, "bad request")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	post := f.posts[req.PostID]
	id := f.nextID("c")
	f.byID[id] = &models.Comment{
		ID:             id,
		PostInfo:       models.PostInfo{PostID: req.PostID, PostTitle: post.Title, PostURL: post.URL},
		Content:        req.Content,
		UserInfo:       models.UserInfo{Username: req.Username, Email: req.Email, Website: req.Website},
		ApprovalStatus: models.StatusPending,
		CreatedAt:      int64(1700000000 + f.seq),
		Replies:        []models.Reply{},
	}
	f.order = append(f.order, id)
	writeOK(w, models.IDResult{ID: id})
}

func (f *fakeRemote) createReply(w http.ResponseWriter, r *http.Request) {
	var req models.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, 400, "bad request")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.byID[r.PathValue("id")]
	if !ok {
		writeErr(w, http.StatusNotFound, 404, "评论不存在")
		return
	}
	// 被回复人的昵称写入时冗余，目标之后被删也能展示
	replyTo := comment.UserInfo.Username
	if req.ReplyToID != "" {
		for _, sibling := range comment.Replies {
			if sibling.ID == req.ReplyToID {
				replyTo = sibling.Name
			}
		}
	}
	id := f.nextID("r")
	comment.Replies = append(comment.Replies, models.Reply{
		ID:             id,
		CommentID:      comment.ID,
		Content:        req.Content,
		Name:           req.Username,
		Website:        req.Website,
		ReplyToID:      req.ReplyToID,
		ReplyTo:        replyTo,
		ReplyTime:      int64(1700000000 + f.seq),
		ApprovalStatus: models.StatusPending,
	})
	writeOK(w, models.IDResult{ID: id})
}

func (f *fakeRemote) latest(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]models.LatestComment, 0)
	for i := len(f.order) - 1; i >= 0 && len(list) < 5; i-- {
		c, ok := f.byID[f.order[i]]
		if !ok || c.ApprovalStatus != models.StatusApproved {
			continue
		}
		list = append(list, models.LatestComment{
			PostInfo:  c.PostInfo,
			Name:      c.UserInfo.Username,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	writeOK(w, models.ListResult[models.LatestComment]{List: list})
}

func (f *fakeRemote) publicList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	postID := r.PathValue("postId")
	list := make([]models.Comment, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		c, ok := f.byID[f.order[i]]
		if !ok || c.PostInfo.PostID != postID || c.ApprovalStatus != models.StatusApproved {
			continue
		}
		out := *c
		out.Replies = make([]models.Reply, 0, len(c.Replies))
		for _, reply := range c.Replies {
			if reply.ApprovalStatus == models.StatusApproved {
				out.Replies = append(out.Replies, reply)
			}
		}
		list = append(list, out)
	}
	writeOK(w, models.ListResult[models.Comment]{List: list})
}

func (f *fakeRemote) adminList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status := models.ApprovalStatus(r.URL.Query().Get("status"))
	keyword := r.URL.Query().Get("keyword")

	filtered := make([]models.Comment, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		c, ok := f.byID[f.order[i]]
		if !ok {
			continue
		}
		if status != "" && c.ApprovalStatus != status {
			continue
		}
		if keyword != "" && !strings.Contains(c.Content, keyword) {
			continue
		}
		filtered = append(filtered, *c)
	}

	pageNo, _ := strconv.ParseInt(r.URL.Query().Get("pageNo"), 10, 64)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("pageSize"), 10, 64)
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	total := int64(len(filtered))
	start := (pageNo - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	totalPages := (total + pageSize - 1) / pageSize

	writeOK(w, models.PageResult[models.Comment]{
		PageNo:     pageNo,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
		List:       filtered[start:end],
	})
}

func (f *fakeRemote) transitionComment(to models.ApprovalStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		comment, ok := f.byID[r.PathValue("id")]
		if !ok {
			writeErr(w, http.StatusNotFound, 404, "评论不存在")
			return
		}
		comment.ApprovalStatus = to // 重复迁移是无操作的成功
		writeOK(w, nil)
	}
}

func (f *fakeRemote) transitionReply(to models.ApprovalStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		comment, ok := f.byID[r.PathValue("id")]
		if !ok {
			writeErr(w, http.StatusNotFound, 404, "评论不存在")
			return
		}
		for i := range comment.Replies {
			if comment.Replies[i].ID == r.PathValue("rid") {
				comment.Replies[i].ApprovalStatus = to
				writeOK(w, nil)
				return
			}
		}
		writeErr(w, http.StatusNotFound, 404, "回复不存在")
	}
}

func (f *fakeRemote) deleteComment(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.PathValue("id")
	if _, ok := f.byID[id]; !ok {
		writeErr(w, http.StatusNotFound, 404, "评论不存在")
		return
	}
	// 级联：评论连同其全部回复一起消失
	delete(f.byID, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	writeOK(w, nil)
}

func (f *fakeRemote) deleteReply(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.byID[r.PathValue("id")]
	if !ok {
		writeErr(w, http.StatusNotFound, 404, "评论不存在")
		return
	}
	rid := r.PathValue("rid")
	for i := range comment.Replies {
		if comment.Replies[i].ID == rid {
			// 只删自己，兄弟回复对它的 reply_to_id 悬空
			comment.Replies = append(comment.Replies[:i], comment.Replies[i+1:]...)
			writeOK(w, nil)
			return
		}
	}
	writeErr(w, http.StatusNotFound, 404, "回复不存在")
}
