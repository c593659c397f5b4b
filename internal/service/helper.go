package service

import (
	"fmt"
	"strings"

	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/model"
)

// 时间展示格式
const (
	timeLayout  = "2006-01-02 15:04:05"
	clockLayout = "15:04"
)

// slugify 将房间名转为 URL slug：小写，连续非字母数字折叠为单个连字符
func slugify(name string) string {
	var b strings.Builder
	lastDash := true // 抑制开头的连字符
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "room"
	}
	return slug
}

// formatFileSize 附件大小展示文案
func formatFileSize(size int64) string {
	switch {
	case size <= 0:
		return ""
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

// roomToRespond 组装房间响应，访问码仅对房主可见
func roomToRespond(room *model.ChatRoom, viewerUuid string) respond.RoomRespond {
	resp := respond.RoomRespond{
		Slug:      room.Slug,
		Name:      room.Name,
		RoomType:  room.RoomType,
		OwnerUuid: room.OwnerUuid,
		CreatedAt: room.CreatedAt.Format(timeLayout),
	}
	if room.OwnerUuid == viewerUuid && room.AccessCode != nil {
		resp.AccessCode = *room.AccessCode
	}
	return resp
}

// messageToRespond 组装消息响应
func messageToRespond(m *model.Message, reactions map[string]respond.ReactionSummaryRespond) respond.MessageRespond {
	if reactions == nil {
		reactions = map[string]respond.ReactionSummaryRespond{}
	}
	return respond.MessageRespond{
		Id:         m.ID,
		Uuid:       fmt.Sprintf("%d", m.Uuid),
		SenderUuid: m.SenderUuid,
		SenderName: m.SenderName,
		Content:    m.Content,
		Type:       m.Type,
		FileUrl:    m.FileUrl,
		FileName:   m.FileName,
		FileSize:   formatFileSize(m.FileSize),
		CreatedAt:  m.CreatedAt.Format(timeLayout),
		Reactions:  reactions,
	}
}

// usernamesByUuid 从用户列表构建 uuid -> username 映射
func usernamesByUuid(users []model.UserInfo) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.Uuid] = u.Username
	}
	return names
}
