package respond

// RoomRespond 房间信息
// AccessCode 仅对房主返回，其他人始终为空
type RoomRespond struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	RoomType   string `json:"room_type"`
	OwnerUuid  string `json:"owner_uuid"`
	AccessCode string `json:"access_code,omitempty"`
	CreatedAt  string `json:"created_at"`
	// MemberCount 仅私密房间列表对房主填充
	MemberCount int64 `json:"member_count,omitempty"`
}

// PrivateRoomsRespond 私密房间列表（拥有的 + 加入的）
type PrivateRoomsRespond struct {
	OwnedRooms  []RoomRespond `json:"owned_rooms"`
	JoinedRooms []RoomRespond `json:"joined_rooms"`
}

// RoomHistoryRespond 进入房间时的初始视图
type RoomHistoryRespond struct {
	Room        RoomRespond         `json:"room"`
	Messages    []MessageRespond    `json:"messages"`
	OnlineUsers []OnlineUserRespond `json:"online_users"`
}
