package middleware

import (
	"sync"

	"github.com/google/uuid"
)

var _ tokenValidator = &tokenValidatorMock{}

type tokenValidatorMock struct {
	ValidateTokenFunc func(token string) (uuid.UUID, string, error)

	calls struct {
		ValidateToken []struct {
			Token string
		}
	}
	lock sync.RWMutex
}

func (mock *tokenValidatorMock) ValidateToken(token string) (uuid.UUID, string, error) {
	if mock.ValidateTokenFunc == nil {
		panic("tokenValidatorMock.ValidateTokenFunc: method is nil but tokenValidator.ValidateToken was just called")
	}
	mock.lock.Lock()
	mock.calls.ValidateToken = append(mock.calls.ValidateToken, struct {
		Token string
	}{token})
	mock.lock.Unlock()
	return mock.ValidateTokenFunc(token)
}

func (mock *tokenValidatorMock) ValidateTokenCalls() []struct {
	Token string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ValidateToken
}
