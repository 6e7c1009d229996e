package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
)

var (
	_ accountRepo = &accountRepoMock{}
	_ sessionRepo = &sessionRepoMock{}
	_ txManager   = &txManagerMock{}
)

type accountRepoMock struct {
	CodeIsFreeFunc     func(ctx context.Context, code string) (bool, error)
	RedeemFunc         func(ctx context.Context, code, username, email, passwordHash string) (*domain.Account, error)
	GetByUsernameFunc  func(ctx context.Context, username string) (*domain.Account, error)
	TouchLastLoginFunc func(ctx context.Context, id uuid.UUID) error
	InsertCodeFunc     func(ctx context.Context, code string) error
	AvailableCodesFunc func(ctx context.Context) ([]string, error)

	calls struct {
		Redeem []struct {
			Code         string
			Username     string
			Email        string
			PasswordHash string
		}
		TouchLastLogin []struct {
			ID uuid.UUID
		}
		InsertCode []struct {
			Code string
		}
	}
	lock sync.RWMutex
}

func (mock *accountRepoMock) CodeIsFree(ctx context.Context, code string) (bool, error) {
	if mock.CodeIsFreeFunc == nil {
		panic("accountRepoMock.CodeIsFreeFunc: method is nil but accountRepo.CodeIsFree was just called")
	}
	return mock.CodeIsFreeFunc(ctx, code)
}

func (mock *accountRepoMock) Redeem(ctx context.Context, code, username, email, passwordHash string) (*domain.Account, error) {
	if mock.RedeemFunc == nil {
		panic("accountRepoMock.RedeemFunc: method is nil but accountRepo.Redeem was just called")
	}
	callInfo := struct {
		Code         string
		Username     string
		Email        string
		PasswordHash string
	}{Code: code, Username: username, Email: email, PasswordHash: passwordHash}
	mock.lock.Lock()
	mock.calls.Redeem = append(mock.calls.Redeem, callInfo)
	mock.lock.Unlock()
	return mock.RedeemFunc(ctx, code, username, email, passwordHash)
}

func (mock *accountRepoMock) RedeemCalls() []struct {
	Code         string
	Username     string
	Email        string
	PasswordHash string
} {
	mock.lock.RLock()
	calls := mock.calls.Redeem
	mock.lock.RUnlock()
	return calls
}

func (mock *accountRepoMock) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if mock.GetByUsernameFunc == nil {
		panic("accountRepoMock.GetByUsernameFunc: method is nil but accountRepo.GetByUsername was just called")
	}
	return mock.GetByUsernameFunc(ctx, username)
}

func (mock *accountRepoMock) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	if mock.TouchLastLoginFunc == nil {
		panic("accountRepoMock.TouchLastLoginFunc: method is nil but accountRepo.TouchLastLogin was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lock.Lock()
	mock.calls.TouchLastLogin = append(mock.calls.TouchLastLogin, callInfo)
	mock.lock.Unlock()
	return mock.TouchLastLoginFunc(ctx, id)
}

func (mock *accountRepoMock) TouchLastLoginCalls() []struct{ ID uuid.UUID } {
	mock.lock.RLock()
	calls := mock.calls.TouchLastLogin
	mock.lock.RUnlock()
	return calls
}

func (mock *accountRepoMock) InsertCode(ctx context.Context, code string) error {
	if mock.InsertCodeFunc == nil {
		panic("accountRepoMock.InsertCodeFunc: method is nil but accountRepo.InsertCode was just called")
	}
	callInfo := struct{ Code string }{Code: code}
	mock.lock.Lock()
	mock.calls.InsertCode = append(mock.calls.InsertCode, callInfo)
	mock.lock.Unlock()
	return mock.InsertCodeFunc(ctx, code)
}

func (mock *accountRepoMock) InsertCodeCalls() []struct{ Code string } {
	mock.lock.RLock()
	calls := mock.calls.InsertCode
	mock.lock.RUnlock()
	return calls
}

func (mock *accountRepoMock) AvailableCodes(ctx context.Context) ([]string, error) {
	if mock.AvailableCodesFunc == nil {
		panic("accountRepoMock.AvailableCodesFunc: method is nil but accountRepo.AvailableCodes was just called")
	}
	return mock.AvailableCodesFunc(ctx)
}

type sessionRepoMock struct {
	CreateFunc      func(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByTokenFunc  func(ctx context.Context, token string) (*domain.Session, *domain.SessionContext, error)
	InvalidateFunc  func(ctx context.Context, token string) error
	DeleteStaleFunc func(ctx context.Context) (int, error)

	calls struct {
		Create []struct {
			Session *domain.Session
		}
		Invalidate []struct {
			Token string
		}
	}
	lock sync.RWMutex
}

func (mock *sessionRepoMock) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	callInfo := struct{ Session *domain.Session }{Session: s}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *sessionRepoMock) CreateCalls() []struct{ Session *domain.Session } {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetByToken(ctx context.Context, token string) (*domain.Session, *domain.SessionContext, error) {
	if mock.GetByTokenFunc == nil {
		panic("sessionRepoMock.GetByTokenFunc: method is nil but sessionRepo.GetByToken was just called")
	}
	return mock.GetByTokenFunc(ctx, token)
}

func (mock *sessionRepoMock) Invalidate(ctx context.Context, token string) error {
	if mock.InvalidateFunc == nil {
		panic("sessionRepoMock.InvalidateFunc: method is nil but sessionRepo.Invalidate was just called")
	}
	callInfo := struct{ Token string }{Token: token}
	mock.lock.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lock.Unlock()
	return mock.InvalidateFunc(ctx, token)
}

func (mock *sessionRepoMock) InvalidateCalls() []struct{ Token string } {
	mock.lock.RLock()
	calls := mock.calls.Invalidate
	mock.lock.RUnlock()
	return calls
}

func (mock *sessionRepoMock) DeleteStale(ctx context.Context) (int, error) {
	if mock.DeleteStaleFunc == nil {
		panic("sessionRepoMock.DeleteStaleFunc: method is nil but sessionRepo.DeleteStale was just called")
	}
	return mock.DeleteStaleFunc(ctx)
}

// txManagerMock runs the callback inline.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
