// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"timetrack_backend/internal/feature/auth/domain/entity"
	jwtmw "timetrack_backend/internal/platform/jwt"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
type PasswordHasher interface {
	// Hash は平文パスワードのソルト付きハッシュを生成します。
	Hash(plain string) (string, error)
	// Verify は平文パスワードと保存済みハッシュを定数時間で比較します。
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer は署名済みトークンの発行を抽象化します。
type TokenIssuer interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// TokenValidator は署名済みトークンの検証を抽象化します。
type TokenValidator interface {
	// ValidateToken は署名と有効期限を検証し、クレームを返します。
	ValidateToken(token string) (jwtmw.Claims, error)
}

// authUsecase は認証ゲートを実装します。
// ローカル戦略（ログイン）とトークン戦略（保護ルートの認可）を束ね、
// 成功時にトークンを発行します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	issuer TokenIssuer
	local  Strategy
	token  Strategy
}

// authUsecaseがjwtmw.Authorizerを実装していることをコンパイル時に検証します。
var _ jwtmw.Authorizer = (*authUsecase)(nil)

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, issuer TokenIssuer, validator TokenValidator) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		local:  NewLocalCredentialStrategy(users, hasher),
		token:  NewTokenStrategy(users, validator),
	}
}

// authenticate は入力の形に応じて適切な戦略へディスパッチします。
func (u *authUsecase) authenticate(ctx context.Context, input any) (*entity.User, error) {
	switch input.(type) {
	case Credentials:
		return u.local.Authenticate(ctx, input)
	case BearerToken:
		return u.token.Authenticate(ctx, input)
	default:
		return nil, fmt.Errorf("unsupported authentication input %T", input)
	}
}

// Register はメールアドレスの一意性を確認した上で新規ユーザーを登録し、
// ログインと同様にトークンを発行します。
// 重複メールアドレスの場合はErrEmailAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, string, error) {
	// 既存ユーザーの確認
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	// Createは一意制約違反（確認と挿入の間の競合）もErrEmailAlreadyExistsへ写像する
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.issuer.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login はローカル戦略でユーザーを認証し、成功時にトークンを発行します。
// 失敗理由はErrUserNotFoundまたはErrIncorrectPasswordとして返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := u.authenticate(ctx, Credentials{Email: email, Password: password})
	if err != nil {
		return nil, "", err
	}

	token, err := u.issuer.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Authorize はトークン戦略でリクエストを認可します。
// jwtmw.Authorizerの実装として、認証ミドルウェアから呼び出されます。
func (u *authUsecase) Authorize(ctx context.Context, token string) (jwtmw.Principal, error) {
	user, err := u.authenticate(ctx, BearerToken(token))
	if err != nil {
		return jwtmw.Principal{}, err
	}
	return jwtmw.Principal{UserID: user.ID, Email: user.Email}, nil
}
