package request

// GetMessagesRequest 增量拉取消息请求
// since 为客户端已见的最大消息 ID，返回 ID 严格大于它的消息
type GetMessagesRequest struct {
	Since uint `form:"since"`
	Limit int  `form:"limit" binding:"omitempty,min=1"`
}

// SendMessageRequest 发送纯文本消息请求
// 带附件的消息走 multipart 表单，不经过此结构
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ToggleReactionRequest 表情回应切换请求
type ToggleReactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}
