package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID, barberID := uuid.New(), uuid.New()

	r := gin.New()
	r.GET("/me", AuthMiddleware("s3cret"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "barber": BarberID(c)})
	})

	token, err := IssueToken("s3cret", time.Hour, userID, barberID, "owner")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), barberID.String())

	w = do(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")

	forged, err := IssueToken("other", time.Hour, userID, barberID, "owner")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	expired, err := IssueToken("s3cret", -time.Minute, userID, barberID, "owner")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
}

func TestRequireBarber(t *testing.T) {
	r := gin.New()
	r.GET("/x", AuthMiddleware("k"), RequireBarber(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	token, err := IssueToken("k", time.Hour, uuid.New(), uuid.Nil, "owner")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)
}

func TestInternalKey(t *testing.T) {
	r := gin.New()
	r.POST("/i", InternalKey("k1"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/i", nil)
	req.Header.Set(HeaderInternalKey, "k1")
	assert.Equal(t, http.StatusNoContent, do(r, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/i", nil)
	req.Header.Set(HeaderInternalKey, "k2")
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	open := gin.New()
	open.POST("/i", InternalKey(""), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusUnauthorized, do(open, httptest.NewRequest(http.MethodPost, "/i", nil)).Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.POST("/b", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, do(r, httptest.NewRequest(http.MethodPost, "/b", nil)).Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	rl.sweep(time.Now().Add(time.Hour))
	assert.Empty(t, rl.clients)
}

func TestCustomRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(NewLogger(configForTest())), CustomRecovery(NewLogger(configForTest())))
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := do(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func configForTest() config.LogConfig {
	return config.LogConfig{Level: "error"}
}
