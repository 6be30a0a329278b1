package services

import (
	"context"
	"net/url"
	"time"

	"moyuan/internal/models"
	"moyuan/internal/utils"
)

// PostService 文章元信息客户端。文章本身是外部协作方，这里只取
// 评论页需要的标题、链接和"是否允许评论"开关，带短 TTL 缓存，
// 免得每次提交评论都打一遍远端。
type PostService struct {
	api   *APIClient
	cache *utils.Cache[models.Post]
	ttl   time.Duration
}

// NewPostService 创建文章服务，供测试注入
func NewPostService(api *APIClient) *PostService {
	return &PostService{
		api:   api,
		cache: utils.NewCache[models.Post](256),
		ttl:   5 * time.Minute,
	}
}

// 全局单例
var postService *PostService

// GetPostService 获取文章服务单例
func GetPostService() *PostService {
	if postService == nil {
		postService = NewPostService(GetAPIClient())
	}
	return postService
}

// GetPost 取文章元信息，命中缓存则不出网
func (s *PostService) GetPost(ctx context.Context, id string) (models.Post, error) {
	if post, ok := s.cache.Get(id); ok {
		return post, nil
	}
	post, err := get[models.Post](ctx, s.api, "/posts/"+url.PathEscape(id), nil)
	if err != nil {
		return models.Post{}, err
	}
	s.cache.Set(id, post, s.ttl)
	return post, nil
}
