package respond

// LoginRespond 用户登录响应
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	IsAdmin      int8   `json:"is_admin"`
	CreatedAt    string `json:"created_at"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRespond 用户注册响应
type RegisterRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
}

// RefreshTokenRespond 刷新令牌响应
type RefreshTokenRespond struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserInfoRespond 用户信息（管理端列表）
type UserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   int8   `json:"is_admin"`
	Status    int8   `json:"status"`
	CreatedAt string `json:"created_at"`
}
