package services

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"strings"
)

// ResolveAvatar 由邮箱派生头像地址：规范化（去空白、转小写）后取 md5，
// 拼到头像服务地址上。同一邮箱永远得到同一头像；空邮箱返回空串哨兵，
// 不算错误，由界面层自行兜底。
func ResolveAvatar(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	hash := md5.Sum([]byte(email))
	return avatarBase() + hex.EncodeToString(hash[:])
}

func avatarBase() string {
	if base := os.Getenv("GRAVATAR_API"); base != "" {
		return base
	}
	return "https://1.gravatar.com/avatar/"
}

// IsAuthor 判断评论者是否就是文章作者本人（严格等值比较）。
// 只给出判断，"[作者]" 角标由界面层自己拼。
func IsAuthor(displayName, articleAuthorName string) bool {
	return displayName == articleAuthorName
}
