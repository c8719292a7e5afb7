package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annapurna-ai/backend/internal/mocks"
	"github.com/annapurna-ai/backend/internal/types"
)

func runAuth(t *testing.T, validator TokenValidator, header string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	AuthMiddleware(validator)(c)
	return w, c
}

func TestAuthMiddlewareSetsUserContext(t *testing.T) {
	userID := uuid.New()
	validator := new(mocks.MockAuthService)
	validator.On("ValidateToken", "good-token").Return(&types.TokenClaims{UserID: userID, Name: "Asha"}, nil)

	w, c := runAuth(t, validator, "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)

	got, exists := c.Get("user_id")
	require.True(t, exists)
	assert.Equal(t, userID, got)
	name, _ := c.Get("name")
	assert.Equal(t, "Asha", name)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w, c := runAuth(t, new(mocks.MockAuthService), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic abc", "Bearer a b"} {
		w, c := runAuth(t, new(mocks.MockAuthService), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.True(t, c.IsAborted(), header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	validator := new(mocks.MockAuthService)
	validator.On("ValidateToken", "bad-token").Return(nil, assert.AnError)

	w, c := runAuth(t, validator, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}
