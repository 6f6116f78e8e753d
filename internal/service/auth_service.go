package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/GitCode330/TeohYiShan-Information-Managenent-Retrieval-Assessment-2/internal/model"
)

// DefaultAuthAPIURL — адрес внешнего Authenticator API по умолчанию.
const DefaultAuthAPIURL = "https://web.socem.plymouth.ac.uk/COMP2001/auth/api/users"

// TokenResolver определяет способ превращения bearer-токена в личность пользователя.
// Возвращает (nil, false), если токен недействителен.
type TokenResolver interface {
	Resolve(token string) (*model.User, bool)
}

// StaticTokenResolver разрешает фиксированный набор тестовых токенов без
// обращения к сети. Таблица компилируется в бинарь и после старта только читается.
type StaticTokenResolver struct {
	tokens map[string]model.User
}

// NewStaticTokenResolver создает резолвер со стандартной таблицей тестовых токенов.
func NewStaticTokenResolver() *StaticTokenResolver {
	return &StaticTokenResolver{tokens: map[string]model.User{
		"test_token_101":  {ID: 101, Name: "Ada Lovelace"},
		"test_token_102":  {ID: 102, Name: "Tim Berners-Lee"},
		"test_token_103":  {ID: 103, Name: "Grace Hopper"},
		"dummy_token_cw2": {ID: 101, Name: "Test User"},
	}}
}

// Resolve ищет токен в статической таблице.
func (r *StaticTokenResolver) Resolve(token string) (*model.User, bool) {
	user, ok := r.tokens[token]
	if !ok {
		return nil, false
	}
	return &user, true
}

// RemoteTokenResolver проверяет токен через внешний Authenticator API.
// Сначала GET <base>/validate подтверждает действительность токена (только
// HTTP 200 считается успехом), затем GET <base> возвращает данные пользователя.
// Любая сетевая ошибка или таймаут трактуются как недействительный токен,
// наружу ошибка не поднимается.
type RemoteTokenResolver struct {
	baseURL string
	client  *http.Client
}

// NewRemoteTokenResolver создает резолвер для внешнего API с таймаутом 5 секунд.
func NewRemoteTokenResolver(baseURL string) *RemoteTokenResolver {
	return &RemoteTokenResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Resolve проверяет токен во внешнем сервисе и запрашивает данные пользователя.
// Данным пользователя доверяем только после успешной проверки токена.
func (r *RemoteTokenResolver) Resolve(token string) (*model.User, bool) {
	resp, err := r.get(r.baseURL+"/validate", token)
	if err != nil {
		return nil, false
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	resp, err = r.get(r.baseURL, token)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, false
	}
	return &user, true
}

func (r *RemoteTokenResolver) get(url, token string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return r.client.Do(req)
}

// TestToken описывает тестовый токен для эндпоинта GET /test-tokens.
type TestToken struct {
	Token      string `json:"token"`
	UserID     int    `json:"user_id"`
	UserName   string `json:"user_name"`
	OwnsTrails []int  `json:"owns_trails,omitempty"`
}

// AuthService разрешает bearer-токены, пробуя резолверы по порядку:
// сначала статическую таблицу тестовых токенов, затем внешний сервис.
type AuthService struct {
	resolvers []TokenResolver
}

// NewAuthService создает сервис аутентификации с цепочкой "статика, затем внешний API".
func NewAuthService(authAPIURL string) *AuthService {
	if authAPIURL == "" {
		authAPIURL = DefaultAuthAPIURL
	}
	return &AuthService{resolvers: []TokenResolver{
		NewStaticTokenResolver(),
		NewRemoteTokenResolver(authAPIURL),
	}}
}

// NewAuthServiceWith создает сервис с произвольной цепочкой резолверов.
func NewAuthServiceWith(resolvers ...TokenResolver) *AuthService {
	return &AuthService{resolvers: resolvers}
}

// ResolveToken возвращает личность пользователя для токена или (nil, false).
func (s *AuthService) ResolveToken(token string) (*model.User, bool) {
	for _, r := range s.resolvers {
		if user, ok := r.Resolve(token); ok {
			return user, true
		}
	}
	return nil, false
}

// TestTokens возвращает список токенов для разработки (GET /test-tokens).
func (s *AuthService) TestTokens() []TestToken {
	return []TestToken{
		{Token: "test_token_101", UserID: 101, UserName: "Ada Lovelace", OwnsTrails: []int{1}},
		{Token: "test_token_102", UserID: 102, UserName: "Tim Berners-Lee", OwnsTrails: []int{2}},
		{Token: "test_token_103", UserID: 103, UserName: "Grace Hopper", OwnsTrails: []int{3}},
		{Token: "dummy_token_cw2", UserID: 101, UserName: "Test User"},
	}
}
