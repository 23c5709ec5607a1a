package clients

import (
	"errors"
	"net/http"
)

var ErrMissingToken = errors.New("allegro access token is not configured")

// AuthEngine подписывает запросы к API Allegro.
type AuthEngine interface {
	Authorize(request *http.Request) error
}

// BearerAuth - готовый access token; получение и обновление токена живут вне сервиса.
type BearerAuth struct {
	token string
}

func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{token: token}
}

func (b *BearerAuth) Authorize(request *http.Request) error {
	if b.token == "" {
		return ErrMissingToken
	}
	request.Header.Set("Authorization", "Bearer "+b.token)
	return nil
}
