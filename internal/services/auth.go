package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// TokenPair is what every successful auth operation hands back to the
// transport layer: a short-lived stateless JWT plus a rotated refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type jwtClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseAccessToken(tokenString string) (uuid.UUID, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, apperr.BadRequest("invalid_email", "a valid email is required")
	}
	if len(password) < 8 {
		return nil, nil, apperr.BadRequest("weak_password", "password must be at least 8 characters")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if exists {
		return nil, nil, apperr.Conflict("email_taken", "an account with that email already exists")
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	hash := string(hashBytes)

	user := &types.User{
		ID:           uuid.New(),
		Email:        &email,
		PasswordHash: &hash,
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return err
		}
		var issueErr error
		pair, issueErr = as.issueTokens(ctx, tx, user.ID)
		return issueErr
	})
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	as.log.Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if len(users) == 0 || users[0].PasswordHash == nil {
		return nil, nil, apperr.Unauthorized("invalid_credentials", "email or password is incorrect")
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperr.Unauthorized("invalid_credentials", "email or password is incorrect")
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issueErr error
		pair, issueErr = as.issueTokens(ctx, tx, user.ID)
		return issueErr
	})
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	return user, pair, nil
}

// Refresh rotates the refresh token: the presented token is consumed and a
// fresh pair is issued, so a replayed token fails on its second use.
func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("missing_refresh_token", "refresh token required")
	}

	var pair *TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tokens, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{refreshToken})
		if err != nil {
			return err
		}
		if len(tokens) == 0 {
			return apperr.Unauthorized("invalid_refresh_token", "refresh token not recognized")
		}
		existing := tokens[0]
		if existing.ExpiresAt.Before(time.Now()) {
			_ = as.userTokenRepo.DeleteByRefreshTokens(ctx, tx, []string{refreshToken})
			return apperr.Unauthorized("expired_refresh_token", "refresh token expired")
		}

		if err := as.userTokenRepo.DeleteByRefreshTokens(ctx, tx, []string{refreshToken}); err != nil {
			return err
		}

		var issueErr error
		pair, issueErr = as.issueTokens(ctx, tx, existing.UserID)
		return issueErr
	})
	if err != nil {
		if ae := apperr.From(err); ae != nil {
			return nil, ae
		}
		return nil, apperr.Internal(err)
	}

	return pair, nil
}

func (as *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := as.userTokenRepo.DeleteByRefreshTokens(ctx, nil, []string{refreshToken}); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (as *authService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("invalid_token", "invalid or expired access token")
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, apperr.Unauthorized("invalid_token", "invalid or expired access token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("invalid_token", "invalid subject in access token")
	}
	return userID, nil
}

func (as *authService) AccessTTL() time.Duration  { return as.accessTTL }
func (as *authService) RefreshTTL() time.Duration { return as.refreshTTL }

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*TokenPair, error) {
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
