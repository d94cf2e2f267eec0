package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userRepo "careerpath/database/repository/user"
	"careerpath/models"
	"careerpath/utils"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type stubUsers struct {
	userRepo.UserRepository
	users   map[string]models.User
	lookups int
}

func (s *stubUsers) GetByIDWithProjection(_ context.Context, id string, _ bson.M) (*models.User, error) {
	s.lookups++
	u, ok := s.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(repo userRepo.UserRepository, cache *redis.Client, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthUserMiddleware(repo, cache)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+"/"+c.GetString(ContextRole))
	})
	r.GET("/me", handlers...)
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issue(t *testing.T, users *stubUsers, id string, role models.Role) string {
	t.Helper()
	token, err := utils.GenerateToken(id, string(role), time.Hour)
	require.NoError(t, err)
	users.users[id] = models.User{ID: id, Role: role, TokenHash: utils.HashToken(token)}
	return token
}

func TestJWTAuth_RejectsMissingAndGarbageTokens(t *testing.T) {
	users := &stubUsers{users: map[string]models.User{}}
	r := newAuthRouter(users, nil)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "not-a-jwt").Code)
}

func TestJWTAuth_DatabaseFallbackPrimesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	users := &stubUsers{users: map[string]models.User{}}
	token := issue(t, users, "s1", models.RoleStudent)
	r := newAuthRouter(users, cache)

	w := doGet(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1/student", w.Body.String())
	assert.Equal(t, 1, users.lookups)

	cached, err := mr.Get(utils.AuthCachePrefix + "s1")
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(token), cached)

	require.Equal(t, http.StatusOK, doGet(r, token).Code)
	assert.Equal(t, 1, users.lookups, "second request should be served from cache")
}

func TestJWTAuth_SupersededTokenRejected(t *testing.T) {
	users := &stubUsers{users: map[string]models.User{}}
	token := issue(t, users, "s1", models.RoleStudent)
	u := users.users["s1"]
	u.TokenHash = "something-else"
	users.users["s1"] = u

	w := doGet(newAuthRouter(users, nil), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token mismatch")
}

func TestJWTAuth_LoggedOutTokenRejected(t *testing.T) {
	users := &stubUsers{users: map[string]models.User{}}
	token := issue(t, users, "s1", models.RoleStudent)
	u := users.users["s1"]
	u.TokenHash = ""
	users.users["s1"] = u

	assert.Equal(t, http.StatusUnauthorized, doGet(newAuthRouter(users, nil), token).Code)
}

func TestRequireRole(t *testing.T) {
	users := &stubUsers{users: map[string]models.User{}}
	student := issue(t, users, "s1", models.RoleStudent)
	counselor := issue(t, users, "u-c1", models.RoleCounselor)
	r := newAuthRouter(users, nil, RequireRole(models.RoleCounselor))

	assert.Equal(t, http.StatusForbidden, doGet(r, student).Code)
	assert.Equal(t, http.StatusOK, doGet(r, counselor).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("203.0.113.7"))
	assert.Equal(t, http.StatusOK, call("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, call("203.0.113.7"))
	assert.Equal(t, http.StatusOK, call("198.51.100.2"))
}
