package request

// BlockUserRequest 封禁用户请求
// 临时封禁必须携带 duration_days；永久封禁忽略该字段
type BlockUserRequest struct {
	BlockType    string `json:"block_type" binding:"required,oneof=temporary permanent"`
	Reason       string `json:"reason" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"omitempty,min=1"`
}
