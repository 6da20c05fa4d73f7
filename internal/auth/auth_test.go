package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleEmployee))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleEmployee.AtLeast(RoleCustomer))
	assert.False(t, RoleEmployee.AtLeast(RoleAdmin))
	assert.False(t, RoleCustomer.AtLeast(RoleEmployee))
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := IssueToken("secret", "cook@mise.local", RoleEmployee, time.Hour)
	require.NoError(t, err)

	actor, err := ParseToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "cook@mise.local", actor.Email)
	assert.Equal(t, RoleEmployee, actor.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := IssueToken("secret", "cook@mise.local", RoleEmployee, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", tok)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tok, err := IssueToken("secret", "cook@mise.local", RoleEmployee, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", tok)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/whoami", Middleware("secret"), func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": actor.Email, "role": string(actor.Role)})
	})

	// No header fails closed
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token fails closed
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token passes and exposes the actor
	tok, err := IssueToken("secret", "admin@mise.local", RoleAdmin, time.Hour)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@mise.local")
}
