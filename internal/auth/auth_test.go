package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", Middleware(secret), RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(KeyRole))
	})
	return r
}

func call(r http.Handler, header, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin"+query, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	r := router()

	admin, err := IssueToken(secret, "u1", RoleAdmin, time.Hour)
	require.NoError(t, err)
	user, err := IssueToken(secret, "u2", "User", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(secret, "u1", RoleAdmin, -time.Hour)
	require.NoError(t, err)
	forged, err := IssueToken("other", "u1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"admin", "Bearer " + admin, "", http.StatusOK},
		{"query token", "", "?access_token=" + admin, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"malformed", "Token " + admin, "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, "", http.StatusUnauthorized},
		{"forged", "Bearer " + forged, "", http.StatusUnauthorized},
		{"not admin", "Bearer " + user, "", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, call(r, tc.header, tc.query).Code)
		})
	}
}

func TestMiddleware_RejectsNoneAlg(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": RoleAdmin})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(router(), "Bearer "+s, "").Code)
}

func TestMiddleware_NoSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", Middleware(""), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusInternalServerError, call(r, "Bearer x", "").Code)
}
