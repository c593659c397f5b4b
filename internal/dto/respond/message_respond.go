package respond

// ReactionSummaryRespond 单个表情在一条消息上的聚合
type ReactionSummaryRespond struct {
	Count       int      `json:"count"`
	Users       []string `json:"users"`
	UserReacted bool     `json:"user_reacted"` // 当前查看者是否已回应
}

// MessageRespond 消息记录
// Id 为权威顺序键，客户端用它作为增量拉取的游标
type MessageRespond struct {
	Id         uint                              `json:"id"`
	Uuid       string                            `json:"uuid"` // 雪花 ID 字符串，避免 JS 精度丢失
	SenderUuid string                            `json:"sender_uuid"`
	SenderName string                            `json:"sender_name"`
	Content    string                            `json:"content"`
	Type       string                            `json:"type"`
	FileUrl    string                            `json:"file_url,omitempty"`
	FileName   string                            `json:"file_name,omitempty"`
	FileSize   string                            `json:"file_size,omitempty"` // 展示用，如 "1 MB"
	CreatedAt  string                            `json:"created_at"`
	Reactions  map[string]ReactionSummaryRespond `json:"reactions"`
}

// SendMessageRespond 发送消息响应
type SendMessageRespond struct {
	Id   uint   `json:"id"`
	Uuid string `json:"uuid"`
}

// ToggleReactionRespond 表情切换响应
type ToggleReactionRespond struct {
	Added     bool                              `json:"added"`
	Reactions map[string]ReactionSummaryRespond `json:"reactions"`
}
