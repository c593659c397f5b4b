// Package email 提供 SMTP 邮件通知发送
// 用于封禁/解封等管理动作的用户通知，发送失败只记日志不阻断业务
package email

import (
	"fmt"
	"net/smtp"

	"huoban_chat_server/internal/config"

	"go.uber.org/zap"
)

// Sender 邮件发送接口，便于测试替换
type Sender interface {
	Send(to, subject, body string) error
}

// smtpSender 基于 net/smtp 的实现
type smtpSender struct {
	cfg config.EmailConfig
}

// noopSender 未启用邮件时的空实现
type noopSender struct{}

func (noopSender) Send(to, subject, body string) error { return nil }

// NewSender 根据配置创建发送器，未启用时返回空实现
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.Enabled {
		return noopSender{}
	}
	return &smtpSender{cfg: cfg}
}

// Send 发送一封纯文本邮件
func (s *smtpSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SmtpHost, s.cfg.SmtpPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SmtpHost)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n",
		s.cfg.From, to, subject, body))
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		zap.L().Error("send mail failed", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}
