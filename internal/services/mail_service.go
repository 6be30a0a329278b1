package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// MailService 站长通知：有新评论进入待审队列时发一封提醒邮件。
// 尽力而为，发送失败只记日志，绝不阻塞评论提交。
type MailService struct {
	Host      string
	Port      string
	Username  string
	Password  string
	From      string
	Webmaster string
	Enabled   bool
}

// NewMailService 从环境变量装配，配置不全则整体禁用
func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	webmaster := os.Getenv("WEBMASTER_EMAIL")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != "" && webmaster != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:      host,
		Port:      port,
		Username:  user,
		Password:  pass,
		From:      from,
		Webmaster: webmaster,
		Enabled:   enabled,
	}
}

// 全局单例
var mailService *MailService

// GetMailService 获取邮件服务单例
func GetMailService() *MailService {
	if mailService == nil {
		mailService = NewMailService()
	}
	return mailService
}

// NotifyNewComment 异步提醒站长有新评论待审
func (s *MailService) NotifyNewComment(postTitle, author, content string) {
	subject := fmt.Sprintf("新评论待审核：%s", postTitle)
	body := fmt.Sprintf("%s 在《%s》下留言：\r\n\r\n%s\r\n\r\n请前往管理后台审核。", author, postTitle, content)
	s.sendAsync(s.Webmaster, subject, body)
}

func (s *MailService) sendAsync(to, subject, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		msg := strings.Join([]string{
			"From: " + s.From,
			"To: " + to,
			"Subject: " + subject,
			"Content-Type: text/plain; charset=UTF-8",
			"",
			body,
		}, "\r\n")

		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := s.Host + ":" + s.Port
		if err := smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg)); err != nil {
			log.Printf("发送站长提醒邮件失败: %v", err)
		}
	}()
}
