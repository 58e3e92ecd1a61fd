package usecase

import (
	"context"
	"errors"
	"fmt"

	"timetrack_backend/internal/feature/auth/domain/entity"
)

// Credentials はローカル戦略への入力（メールアドレスとパスワード）です。
type Credentials struct {
	Email    string
	Password string
}

// BearerToken はトークン戦略への入力（署名済みトークン文字列）です。
type BearerToken string

// Strategy は1種類の認証入力を検証し、認証済みユーザーを返します。
// 入力の形に応じてゲートが適切なバリアントへディスパッチします。
type Strategy interface {
	// Authenticate は入力を検証し、認証済みユーザーまたは拒否エラーを返します。
	Authenticate(ctx context.Context, input any) (*entity.User, error)
}

// dummyPasswordHash はユーザー未検出時のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt比較が常に実行されることを保証します。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LocalCredentialStrategy はメールアドレスとパスワードによる認証を実装します。
type LocalCredentialStrategy struct {
	users     UserRepository
	passwords PasswordHasher
}

var _ Strategy = (*LocalCredentialStrategy)(nil)

// NewLocalCredentialStrategy はLocalCredentialStrategyの新しいインスタンスを生成します。
func NewLocalCredentialStrategy(users UserRepository, passwords PasswordHasher) *LocalCredentialStrategy {
	return &LocalCredentialStrategy{users: users, passwords: passwords}
}

// Authenticate はCredentials入力を検証します。
// ユーザー未検出時もダミーハッシュに対してbcrypt比較を実行し、応答時間の差を抑えます。
func (s *LocalCredentialStrategy) Authenticate(ctx context.Context, input any) (*entity.User, error) {
	creds, ok := input.(Credentials)
	if !ok {
		return nil, fmt.Errorf("local credential strategy: unsupported input %T", input)
	}

	user, findErr := s.users.FindByEmail(ctx, creds.Email)

	hash := dummyPasswordHash
	if findErr == nil {
		hash = user.PasswordHash
	}

	match, verifyErr := s.passwords.Verify(creds.Password, hash)

	if findErr != nil {
		if errors.Is(findErr, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, findErr
	}
	if verifyErr != nil {
		return nil, verifyErr
	}
	if !match {
		return nil, ErrIncorrectPassword
	}

	return user, nil
}

// TokenStrategy は署名済みトークンによるリクエスト認可を実装します。
type TokenStrategy struct {
	users  UserRepository
	tokens TokenValidator
}

var _ Strategy = (*TokenStrategy)(nil)

// NewTokenStrategy はTokenStrategyの新しいインスタンスを生成します。
func NewTokenStrategy(users UserRepository, tokens TokenValidator) *TokenStrategy {
	return &TokenStrategy{users: users, tokens: tokens}
}

// Authenticate はBearerToken入力を検証します。
// 署名と有効期限の検証後、クレームが既存ユーザーを指すことを確認します。
// 匿名アクセスへのフォールバックはありません。
func (s *TokenStrategy) Authenticate(ctx context.Context, input any) (*entity.User, error) {
	token, ok := input.(BearerToken)
	if !ok {
		return nil, fmt.Errorf("token strategy: unsupported input %T", input)
	}

	claims, err := s.tokens.ValidateToken(string(token))
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
