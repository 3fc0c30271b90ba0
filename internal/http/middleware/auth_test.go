package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
	"github.com/simlrfm/simlr-backend/internal/services"
)

// authServiceStub accepts exactly one token string and maps it to a fixed
// user ID.
type authServiceStub struct {
	token  string
	userID uuid.UUID
}

func (s *authServiceStub) Register(ctx context.Context, email, password string) (*types.User, *services.TokenPair, error) {
	panic("not used")
}

func (s *authServiceStub) Login(ctx context.Context, email, password string) (*types.User, *services.TokenPair, error) {
	panic("not used")
}

func (s *authServiceStub) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	panic("not used")
}

func (s *authServiceStub) Logout(ctx context.Context, refreshToken string) error {
	panic("not used")
}

func (s *authServiceStub) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	if tokenString == s.token {
		return s.userID, nil
	}
	return uuid.Nil, apperr.Unauthorized("invalid_token", "invalid or expired access token")
}

func (s *authServiceStub) AccessTTL() time.Duration  { return time.Minute }
func (s *authServiceStub) RefreshTTL() time.Duration { return time.Hour }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	logg, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return logg
}

func newTestRouter(t *testing.T, am *AuthMiddleware, required bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var chain gin.HandlerFunc
	if required {
		chain = am.RequireAuth()
	} else {
		chain = am.OptionalAuth()
	}
	r.GET("/probe", chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": ctxutil.UserID(c.Request.Context()).String()})
	})
	return r
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	svc := &authServiceStub{token: "good", userID: uuid.New()}
	am := NewAuthMiddleware(testLogger(t), svc)
	r := newTestRouter(t, am, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	userID := uuid.New()
	svc := &authServiceStub{token: "good", userID: userID}
	am := NewAuthMiddleware(testLogger(t), svc)
	r := newTestRouter(t, am, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	svc := &authServiceStub{token: "good", userID: uuid.New()}
	am := NewAuthMiddleware(testLogger(t), svc)
	r := newTestRouter(t, am, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	svc := &authServiceStub{token: "good", userID: uuid.New()}
	am := NewAuthMiddleware(testLogger(t), svc)
	r := newTestRouter(t, am, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
