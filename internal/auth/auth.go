package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// Role is an account's permission level
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleCustomer: 0,
	RoleEmployee: 1,
	RoleAdmin:    2,
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role meets or exceeds the given minimum
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Actor is the authenticated account making a request. Role always comes
// from the session token, never from a request body.
type Actor struct {
	Email string
	Role  Role
}

// Claims are the JWT claims carried by a session token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

const actorKey = "actor"

// IssueToken mints a signed session token for the given account
func IssueToken(secret, email string, role Role, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		Role:  string(role),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a session token and returns the actor it identifies
func ParseToken(secret, tokenString string) (*Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role in token")
	}

	return &Actor{Email: claims.Email, Role: role}, nil
}

// Middleware handles JWT session authentication. Requests without a valid
// token fail closed with 401 before any handler runs.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		actor, err := ParseToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the authenticated actor stored by Middleware
func ActorFrom(c *gin.Context) (*Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil, false
	}
	actor, ok := v.(*Actor)
	return actor, ok
}
