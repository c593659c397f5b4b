package respond

// BlockRespond 封禁记录
type BlockRespond struct {
	UserUuid     string `json:"user_uuid"`
	Username     string `json:"username,omitempty"`
	BlockedBy    string `json:"blocked_by"`
	BlockType    string `json:"block_type"`
	Reason       string `json:"reason"`
	BlockedAt    string `json:"blocked_at"`
	BlockedUntil string `json:"blocked_until,omitempty"` // 永久封禁为空
}

// SweepRespond 过期封禁清扫结果
type SweepRespond struct {
	Deactivated int64 `json:"deactivated"`
}
