package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	CreateFunc           func(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	SetLedgerTxHashFunc  func(ctx context.Context, id uuid.UUID, txHash string) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	UpsertGrantFunc      func(ctx context.Context, grant domain.AccessGrant) (domain.AccessGrant, error)
	DeleteGrantFunc      func(ctx context.Context, documentID, userID uuid.UUID) error
	ListOwnedFunc        func(ctx context.Context, userID uuid.UUID) ([]domain.Document, error)
	ListSharedActiveFunc func(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Document, error)
	ListPublicOthersFunc func(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Document, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Doc *domain.Document
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SetLedgerTxHash []struct {
			Ctx    context.Context
			ID     uuid.UUID
			TxHash string
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpsertGrant []struct {
			Ctx   context.Context
			Grant domain.AccessGrant
		}
		DeleteGrant []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
			UserID     uuid.UUID
		}
		ListOwned []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListSharedActive []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Now    time.Time
		}
		ListPublicOthers []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Now    time.Time
			Limit  int
		}
	}
	lock sync.RWMutex
}

func (mock *documentRepoMock) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if mock.CreateFunc == nil {
		panic("documentRepoMock.CreateFunc: method is nil but documentRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Ctx context.Context
		Doc *domain.Document
	}{ctx, doc})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, doc)
}

func (mock *documentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Doc *domain.Document
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *documentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	if mock.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{ctx, id})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *documentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *documentRepoMock) SetLedgerTxHash(ctx context.Context, id uuid.UUID, txHash string) error {
	if mock.SetLedgerTxHashFunc == nil {
		panic("documentRepoMock.SetLedgerTxHashFunc: method is nil but documentRepo.SetLedgerTxHash was just called")
	}
	mock.lock.Lock()
	mock.calls.SetLedgerTxHash = append(mock.calls.SetLedgerTxHash, struct {
		Ctx    context.Context
		ID     uuid.UUID
		TxHash string
	}{ctx, id, txHash})
	mock.lock.Unlock()
	return mock.SetLedgerTxHashFunc(ctx, id, txHash)
}

func (mock *documentRepoMock) SetLedgerTxHashCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	TxHash string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.SetLedgerTxHash
}

func (mock *documentRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("documentRepoMock.DeleteFunc: method is nil but documentRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{ctx, id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *documentRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func (mock *documentRepoMock) UpsertGrant(ctx context.Context, grant domain.AccessGrant) (domain.AccessGrant, error) {
	if mock.UpsertGrantFunc == nil {
		panic("documentRepoMock.UpsertGrantFunc: method is nil but documentRepo.UpsertGrant was just called")
	}
	mock.lock.Lock()
	mock.calls.UpsertGrant = append(mock.calls.UpsertGrant, struct {
		Ctx   context.Context
		Grant domain.AccessGrant
	}{ctx, grant})
	mock.lock.Unlock()
	return mock.UpsertGrantFunc(ctx, grant)
}

func (mock *documentRepoMock) UpsertGrantCalls() []struct {
	Ctx   context.Context
	Grant domain.AccessGrant
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpsertGrant
}

func (mock *documentRepoMock) DeleteGrant(ctx context.Context, documentID, userID uuid.UUID) error {
	if mock.DeleteGrantFunc == nil {
		panic("documentRepoMock.DeleteGrantFunc: method is nil but documentRepo.DeleteGrant was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteGrant = append(mock.calls.DeleteGrant, struct {
		Ctx        context.Context
		DocumentID uuid.UUID
		UserID     uuid.UUID
	}{ctx, documentID, userID})
	mock.lock.Unlock()
	return mock.DeleteGrantFunc(ctx, documentID, userID)
}

func (mock *documentRepoMock) DeleteGrantCalls() []struct {
	Ctx        context.Context
	DocumentID uuid.UUID
	UserID     uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.DeleteGrant
}

func (mock *documentRepoMock) ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	if mock.ListOwnedFunc == nil {
		panic("documentRepoMock.ListOwnedFunc: method is nil but documentRepo.ListOwned was just called")
	}
	mock.lock.Lock()
	mock.calls.ListOwned = append(mock.calls.ListOwned, struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{ctx, userID})
	mock.lock.Unlock()
	return mock.ListOwnedFunc(ctx, userID)
}

func (mock *documentRepoMock) ListSharedActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Document, error) {
	if mock.ListSharedActiveFunc == nil {
		panic("documentRepoMock.ListSharedActiveFunc: method is nil but documentRepo.ListSharedActive was just called")
	}
	mock.lock.Lock()
	mock.calls.ListSharedActive = append(mock.calls.ListSharedActive, struct {
		Ctx    context.Context
		UserID uuid.UUID
		Now    time.Time
	}{ctx, userID, now})
	mock.lock.Unlock()
	return mock.ListSharedActiveFunc(ctx, userID, now)
}

func (mock *documentRepoMock) ListPublicOthers(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Document, error) {
	if mock.ListPublicOthersFunc == nil {
		panic("documentRepoMock.ListPublicOthersFunc: method is nil but documentRepo.ListPublicOthers was just called")
	}
	mock.lock.Lock()
	mock.calls.ListPublicOthers = append(mock.calls.ListPublicOthers, struct {
		Ctx    context.Context
		UserID uuid.UUID
		Now    time.Time
		Limit  int
	}{ctx, userID, now, limit})
	mock.lock.Unlock()
	return mock.ListPublicOthersFunc(ctx, userID, now, limit)
}

func (mock *documentRepoMock) ListPublicOthersCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Now    time.Time
	Limit  int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListPublicOthers
}
