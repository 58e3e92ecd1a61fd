package dto

// LoginReq は/api/auth/loginエンドポイントのリクエストボディを表します。
// パスワードはクライアント互換のためloginPasswordフィールドで受け取ります。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"loginPassword" binding:"required"`
}
