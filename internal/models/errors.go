package models

import (
	"errors"
	"fmt"
)

// ErrNotFound 目标 id 在远端不存在（域错误，非网络故障）
var ErrNotFound = errors.New("not found")

// ValidationError 提交前的本地校验失败，永远不会发往网络
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// APIError 远端返回 code != 0 时的域错误，Message 原样展示给用户
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d:%s", e.Code, e.Message)
}

// TransportError 网络/超时/5xx，与域错误区分开，前端只提示重试
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsNotFound 判断是否为目标不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport 判断是否为传输层故障
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// UserMessage 把错误转成可直接展示的文案：
// 域错误透传远端 message，传输错误给统一的重试提示。
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	if IsNotFound(err) {
		return "目标不存在或已被删除"
	}
	if IsTransport(err) {
		return "网络异常，请稍后重试"
	}
	return err.Error()
}
