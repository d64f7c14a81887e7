package marketplace

import (
	"context"
	"errors"
)

var errEmptyToken = errors.New("marketplace token is not configured")

// staticToken отдаёт заранее выпущенный токен, обновление токена вне нашей зоны.
type staticToken struct {
	token string
}

func (s staticToken) Authenticate(context.Context) error {
	if s.token == "" {
		return errEmptyToken
	}
	return nil
}

func (s staticToken) BearerToken() string {
	return s.token
}
