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
	"golang.org/x/time/rate"

	"github.com/javajoker/shoplist-backend/internal/i18n"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("../i18n/locales", "en"); err != nil {
		panic(err)
	}
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(I18nMiddleware())
	chain := append(handlers, func(c *gin.Context) {
		userID, _ := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "lang": utils.GetLangFromContext(c)})
	})
	r.GET("/", chain...)
	return r
}

func serve(r *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, isAdmin bool) (uuid.UUID, http.Header) {
	t.Helper()
	utils.SetJWTSecret("middleware-secret")
	id := uuid.New()
	token, err := utils.GenerateJWT(id, "ana", isAdmin, time.Hour)
	require.NoError(t, err)
	return id, http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestAuthRequired(t *testing.T) {
	r := newEngine(AuthRequired())

	assert.Equal(t, http.StatusUnauthorized, serve(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.Header{"Authorization": []string{"Token abc"}}).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.Header{"Authorization": []string{"Bearer garbage"}}).Code)

	id, header := bearer(t, false)
	w := serve(r, header)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestAdminRequired(t *testing.T) {
	r := newEngine(AuthRequired(), AdminRequired())

	_, member := bearer(t, false)
	assert.Equal(t, http.StatusForbidden, serve(r, member).Code)

	_, admin := bearer(t, true)
	assert.Equal(t, http.StatusOK, serve(r, admin).Code)
}

func TestOptionalAuth(t *testing.T) {
	r := newEngine(OptionalAuth())

	w := serve(r, http.Header{"Authorization": []string{"Bearer garbage"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)

	id, header := bearer(t, false)
	assert.Contains(t, serve(r, header).Body.String(), id.String())
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, "zh_TW", parseLanguage("zh-TW,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, "zh_TW", parseLanguage("zh-Hant"))
	assert.Equal(t, "zh_TW", parseLanguage("zh_TW"))
	// No simplified Chinese locale is loaded.
	assert.Equal(t, "en", parseLanguage("zh-CN"))
	assert.Equal(t, "en", parseLanguage("en-GB"))
	assert.Equal(t, "en", parseLanguage("fr-FR"))
	assert.Equal(t, "en", parseLanguage(""))
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	r := newEngine(rl.Middleware())

	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, nil).Code)

	rl.evict(0)
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
