package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"moyuan/internal/models"
)

// APIClient 博客远端 API 的传输层封装。
// 远端以 {code, message, data} 信封返回，code == 0 表示成功，
// 其余情况 message 原样透传给用户（见 models.APIError）。
type APIClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewAPIClient 创建客户端，供测试注入假远端
func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
	}
}

// 全局单例
var apiClient *APIClient

// GetAPIClient 获取 API 客户端单例，地址与凭证取自环境变量
func GetAPIClient() *APIClient {
	if apiClient == nil {
		baseURL := os.Getenv("BLOG_API_URL")
		if baseURL == "" {
			baseURL = "http://127.0.0.1:8080"
		}
		apiClient = NewAPIClient(baseURL, os.Getenv("BLOG_API_TOKEN"))
	}
	return apiClient
}

// responseBody 远端统一信封
type responseBody[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// doJSON 发起一次请求并解包信封。
// 网络故障/超时/5xx 归为 TransportError；404 归为 ErrNotFound；
// 其余 code != 0 归为 APIError。
func doJSON[T any](ctx context.Context, c *APIClient, method, path string, query url.Values, body any) (T, error) {
	var zero T

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("编码请求体失败: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return zero, &models.TransportError{Op: method + " " + path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return zero, &models.TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return zero, &models.TransportError{
			Op:  method + " " + path,
			Err: fmt.Errorf("remote status %d", resp.StatusCode),
		}
	}

	var envelope responseBody[T]
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode == http.StatusNotFound {
			return zero, models.ErrNotFound
		}
		return zero, &models.TransportError{Op: method + " " + path, Err: err}
	}

	if envelope.Code != 0 {
		if resp.StatusCode == http.StatusNotFound {
			return zero, fmt.Errorf("%s: %w", envelope.Message, models.ErrNotFound)
		}
		return zero, &models.APIError{Code: envelope.Code, Message: envelope.Message}
	}
	return envelope.Data, nil
}

func get[T any](ctx context.Context, c *APIClient, path string, query url.Values) (T, error) {
	return doJSON[T](ctx, c, http.MethodGet, path, query, nil)
}

func post[T any](ctx context.Context, c *APIClient, path string, body any) (T, error) {
	return doJSON[T](ctx, c, http.MethodPost, path, nil, body)
}

func put[T any](ctx context.Context, c *APIClient, path string, body any) (T, error) {
	return doJSON[T](ctx, c, http.MethodPut, path, nil, body)
}

func del[T any](ctx context.Context, c *APIClient, path string, body any) (T, error) {
	return doJSON[T](ctx, c, http.MethodDelete, path, nil, body)
}
