package request

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	RoomType string `json:"room_type" binding:"omitempty,oneof=public private"`
}

// JoinPrivateRoomRequest 通过访问码加入私密房间请求
type JoinPrivateRoomRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}

// SetRoomTypeRequest 切换房间类型请求
type SetRoomTypeRequest struct {
	RoomType string `json:"room_type" binding:"required,oneof=public private"`
}
