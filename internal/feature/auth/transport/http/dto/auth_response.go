package dto

// UserRes はレスポンスに含まれるユーザー情報を表します。
// usernameは姓名を連結した表示名です。
type UserRes struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthRes は登録・ログイン成功時のレスポンスボディを表します。
type AuthRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
	Token   string  `json:"token"`
}

// MessageRes は汎用のメッセージレスポンスを表します。
type MessageRes struct {
	Message string `json:"message"`
}
