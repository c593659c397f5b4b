package respond

// OnlineUserRespond 房间在线用户
type OnlineUserRespond struct {
	Username      string `json:"username"`
	LastSeen      string `json:"last_seen"` // HH:MM
	IsCurrentUser bool   `json:"is_current_user"`
}
