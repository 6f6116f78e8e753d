package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServer поднимает имитацию внешнего Authenticator API.
// Токен "good" действителен, остальные отвергаются.
func authServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			*calls++
		}
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/validate") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 7, "name": "Remote User"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStaticTokenResolver(t *testing.T) {
	resolver := NewStaticTokenResolver()

	user, ok := resolver.Resolve("test_token_101")
	require.True(t, ok)
	assert.Equal(t, 101, user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)

	user, ok = resolver.Resolve("dummy_token_cw2")
	require.True(t, ok)
	assert.Equal(t, 101, user.ID)

	_, ok = resolver.Resolve("unknown")
	assert.False(t, ok)

	_, ok = resolver.Resolve("")
	assert.False(t, ok)
}

func TestStaticTokenSkipsRemoteCall(t *testing.T) {
	calls := 0
	srv := authServer(t, &calls)

	auth := NewAuthService(srv.URL)
	user, ok := auth.ResolveToken("test_token_102")
	require.True(t, ok)
	assert.Equal(t, 102, user.ID)
	assert.Equal(t, 0, calls, "тестовый токен не должен ходить во внешний сервис")
}

func TestRemoteTokenResolverValidToken(t *testing.T) {
	srv := authServer(t, nil)

	resolver := NewRemoteTokenResolver(srv.URL)
	user, ok := resolver.Resolve("good")
	require.True(t, ok)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "Remote User", user.Name)
}

func TestRemoteTokenResolverInvalidToken(t *testing.T) {
	srv := authServer(t, nil)

	resolver := NewRemoteTokenResolver(srv.URL)
	_, ok := resolver.Resolve("bad")
	assert.False(t, ok)
}

func TestRemoteTokenResolverNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	// Сетевая ошибка трактуется как недействительный токен, без паники и без ошибки наружу.
	resolver := NewRemoteTokenResolver(url)
	_, ok := resolver.Resolve("good")
	assert.False(t, ok)
}

func TestAuthServiceFallsThroughToRemote(t *testing.T) {
	calls := 0
	srv := authServer(t, &calls)

	auth := NewAuthService(srv.URL)
	user, ok := auth.ResolveToken("good")
	require.True(t, ok)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, 2, calls, "ожидались запрос проверки и запрос данных пользователя")

	_, ok = auth.ResolveToken("bad")
	assert.False(t, ok)
}

func TestTestTokensTable(t *testing.T) {
	auth := NewAuthServiceWith(NewStaticTokenResolver())
	tokens := auth.TestTokens()
	require.Len(t, tokens, 4)
	assert.Equal(t, "test_token_101", tokens[0].Token)
	assert.Equal(t, []int{1}, tokens[0].OwnsTrails)

	// Каждый опубликованный токен должен разрешаться статической таблицей.
	for _, tok := range tokens {
		user, ok := auth.ResolveToken(tok.Token)
		require.True(t, ok, "токен %s не разрешился", tok.Token)
		assert.Equal(t, tok.UserID, user.ID)
	}
}
