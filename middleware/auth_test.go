package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newProtectedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(secret))
	r.GET("/whoami", func(c *gin.Context) {
		resp := gin.H{
			"userID":   c.GetInt("userID"),
			"username": c.GetString("username"),
		}
		if classID, ok := c.Get("classID"); ok {
			resp["classID"] = classID
		}
		c.JSON(http.StatusOK, resp)
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := newProtectedRouter(testSecret)
	rec := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := newProtectedRouter(testSecret)
	for _, header := range []string{"garbage", "Basic abc", "Bearer"} {
		rec := get(r, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header: %s", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newProtectedRouter(testSecret)

	token, err := GenerateToken([]byte("other-secret"), 12, "john", nil)
	require.NoError(t, err)

	rec := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := newProtectedRouter(testSecret)

	token, err := GenerateToken(testSecret, 12, "john", nil)
	require.NoError(t, err)

	rec := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userID":12`)
	assert.Contains(t, rec.Body.String(), `"username":"john"`)
	assert.NotContains(t, rec.Body.String(), "classID")
}

func TestAuthMiddlewareClassClaim(t *testing.T) {
	r := newProtectedRouter(testSecret)

	classID := 3
	token, err := GenerateToken(testSecret, 12, "john", &classID)
	require.NoError(t, err)

	rec := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"classID":3`)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1234")
	require.NoError(t, err)
	require.NotEqual(t, "secret1234", hash)

	assert.True(t, VerifyPassword(hash, "secret1234"))
	assert.False(t, VerifyPassword(hash, "secret12345"))
}
