package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestManager_SetUsesJWTExpiry(t *testing.T) {
	m := NewManager("token", time.Hour, false)
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signed(t, exp)

	w := httptest.NewRecorder()
	m.Set(w, token)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, exp.Unix(), cookies[0].Expires.Unix())

	got, ok := m.Get(requestWith(cookies))
	require.True(t, ok)
	assert.Equal(t, token, got)
}

func TestManager_OpaqueTokenFallsBackToDuration(t *testing.T) {
	m := NewManager("token", time.Hour, false)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	assert.Equal(t, fixed.Add(time.Hour), m.Expiry("not-a-jwt"))
}

func TestManager_ExpiredTokenIsAbsent(t *testing.T) {
	m := NewManager("token", time.Hour, false)
	token := signed(t, time.Now().Add(-time.Minute))
	r := requestWith([]*http.Cookie{{Name: "token", Value: token}})
	_, ok := m.Get(r)
	assert.False(t, ok)
}

func TestManager_Clear(t *testing.T) {
	m := NewManager("", time.Hour, true)
	w := httptest.NewRecorder()
	m.Clear(w)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)

	_, ok := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "t1", []byte(`{"username":"ann"}`)))
	v, ok, err := c.Get(ctx, "t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"ann"}`, string(v))

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "t1")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "t2", []byte("x")))
	require.NoError(t, c.Delete(ctx, "t2"))
	_, ok, _ = c.Get(ctx, "t2")
	assert.False(t, ok)
}

func TestNewProfileCache(t *testing.T) {
	c, err := NewProfileCache("none", "", time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "t", []byte("x")))
	_, ok, _ := c.Get(context.Background(), "t")
	assert.False(t, ok)

	c, err = NewProfileCache("redis", "localhost:6379", time.Minute)
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)

	_, err = NewProfileCache("disk", "", time.Minute)
	assert.Error(t, err)
}

func TestCacheKeyHidesToken(t *testing.T) {
	k := cacheKey("secret-token")
	assert.NotContains(t, k, "secret-token")
	assert.Equal(t, k, cacheKey("secret-token"))
}
