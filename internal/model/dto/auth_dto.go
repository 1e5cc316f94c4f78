package dto

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email" vd:"email($)"`
	Password string `json:"password" vd:"len($)>=8"`
	Nickname string `json:"nickname"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" vd:"email($)"`
	Password string `json:"password" vd:"len($)>0"`
}

// RefreshTokenRequest 刷新 token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" vd:"len($)>0"`
}

// TokenPairData 登录/刷新成功后的 token 对
type TokenPairData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
}
