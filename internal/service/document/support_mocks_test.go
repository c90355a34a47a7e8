package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/adapter/ledger"
	"github.com/docuchain/docuchain-backend/internal/domain"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	AppendFunc         func(ctx context.Context, entry domain.ActivityEntry) error
	ListByDocumentFunc func(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.ActivityEntry, error)
	ListByUserFunc     func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ActivityEntry, error)

	calls struct {
		Append []struct {
			Ctx   context.Context
			Entry domain.ActivityEntry
		}
		ListByDocument []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
			Limit      int
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
			Offset int
		}
	}
	lock sync.RWMutex
}

func (mock *activityRepoMock) Append(ctx context.Context, entry domain.ActivityEntry) error {
	if mock.AppendFunc == nil {
		panic("activityRepoMock.AppendFunc: method is nil but activityRepo.Append was just called")
	}
	mock.lock.Lock()
	mock.calls.Append = append(mock.calls.Append, struct {
		Ctx   context.Context
		Entry domain.ActivityEntry
	}{ctx, entry})
	mock.lock.Unlock()
	return mock.AppendFunc(ctx, entry)
}

func (mock *activityRepoMock) AppendCalls() []struct {
	Ctx   context.Context
	Entry domain.ActivityEntry
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Append
}

func (mock *activityRepoMock) ListByDocument(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.ActivityEntry, error) {
	if mock.ListByDocumentFunc == nil {
		panic("activityRepoMock.ListByDocumentFunc: method is nil but activityRepo.ListByDocument was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByDocument = append(mock.calls.ListByDocument, struct {
		Ctx        context.Context
		DocumentID uuid.UUID
		Limit      int
	}{ctx, documentID, limit})
	mock.lock.Unlock()
	return mock.ListByDocumentFunc(ctx, documentID, limit)
}

func (mock *activityRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ActivityEntry, error) {
	if mock.ListByUserFunc == nil {
		panic("activityRepoMock.ListByUserFunc: method is nil but activityRepo.ListByUser was just called")
	}
	mock.lock.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
		Offset int
	}{ctx, userID, limit, offset})
	mock.lock.Unlock()
	return mock.ListByUserFunc(ctx, userID, limit, offset)
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		Ctx context.Context
		ID  uuid.UUID
	}{ctx, id})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

var _ contentStore = &contentStoreMock{}

type contentStoreMock struct {
	PutFunc func(ctx context.Context, plaintext, key []byte) (string, error)
	GetFunc func(ctx context.Context, address string, key []byte) ([]byte, error)

	calls struct {
		Put []struct {
			Ctx       context.Context
			Plaintext []byte
			Key       []byte
		}
		Get []struct {
			Ctx     context.Context
			Address string
			Key     []byte
		}
	}
	lock sync.RWMutex
}

func (mock *contentStoreMock) Put(ctx context.Context, plaintext, key []byte) (string, error) {
	if mock.PutFunc == nil {
		panic("contentStoreMock.PutFunc: method is nil but contentStore.Put was just called")
	}
	mock.lock.Lock()
	mock.calls.Put = append(mock.calls.Put, struct {
		Ctx       context.Context
		Plaintext []byte
		Key       []byte
	}{ctx, plaintext, key})
	mock.lock.Unlock()
	return mock.PutFunc(ctx, plaintext, key)
}

func (mock *contentStoreMock) PutCalls() []struct {
	Ctx       context.Context
	Plaintext []byte
	Key       []byte
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Put
}

func (mock *contentStoreMock) Get(ctx context.Context, address string, key []byte) ([]byte, error) {
	if mock.GetFunc == nil {
		panic("contentStoreMock.GetFunc: method is nil but contentStore.Get was just called")
	}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, struct {
		Ctx     context.Context
		Address string
		Key     []byte
	}{ctx, address, key})
	mock.lock.Unlock()
	return mock.GetFunc(ctx, address, key)
}

func (mock *contentStoreMock) GetCalls() []struct {
	Ctx     context.Context
	Address string
	Key     []byte
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Get
}

var _ ledgerClient = &ledgerClientMock{}

type ledgerClientMock struct {
	RegisterDocumentFunc func(ctx context.Context, contentAddress, ownerWallet string) (ledger.Receipt, error)
	GrantAccessFunc      func(ctx context.Context, contentAddress, granteeWallet string, expiresAt time.Time) (ledger.Receipt, error)
	RevokeAccessFunc     func(ctx context.Context, contentAddress, granteeWallet string) (ledger.Receipt, error)

	calls struct {
		RegisterDocument []struct {
			Ctx            context.Context
			ContentAddress string
			OwnerWallet    string
		}
		GrantAccess []struct {
			Ctx            context.Context
			ContentAddress string
			GranteeWallet  string
			ExpiresAt      time.Time
		}
		RevokeAccess []struct {
			Ctx            context.Context
			ContentAddress string
			GranteeWallet  string
		}
	}
	lock sync.RWMutex
}

func (mock *ledgerClientMock) RegisterDocument(ctx context.Context, contentAddress, ownerWallet string) (ledger.Receipt, error) {
	if mock.RegisterDocumentFunc == nil {
		panic("ledgerClientMock.RegisterDocumentFunc: method is nil but ledgerClient.RegisterDocument was just called")
	}
	mock.lock.Lock()
	mock.calls.RegisterDocument = append(mock.calls.RegisterDocument, struct {
		Ctx            context.Context
		ContentAddress string
		OwnerWallet    string
	}{ctx, contentAddress, ownerWallet})
	mock.lock.Unlock()
	return mock.RegisterDocumentFunc(ctx, contentAddress, ownerWallet)
}

func (mock *ledgerClientMock) RegisterDocumentCalls() []struct {
	Ctx            context.Context
	ContentAddress string
	OwnerWallet    string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RegisterDocument
}

func (mock *ledgerClientMock) GrantAccess(ctx context.Context, contentAddress, granteeWallet string, expiresAt time.Time) (ledger.Receipt, error) {
	if mock.GrantAccessFunc == nil {
		panic("ledgerClientMock.GrantAccessFunc: method is nil but ledgerClient.GrantAccess was just called")
	}
	mock.lock.Lock()
	mock.calls.GrantAccess = append(mock.calls.GrantAccess, struct {
		Ctx            context.Context
		ContentAddress string
		GranteeWallet  string
		ExpiresAt      time.Time
	}{ctx, contentAddress, granteeWallet, expiresAt})
	mock.lock.Unlock()
	return mock.GrantAccessFunc(ctx, contentAddress, granteeWallet, expiresAt)
}

func (mock *ledgerClientMock) GrantAccessCalls() []struct {
	Ctx            context.Context
	ContentAddress string
	GranteeWallet  string
	ExpiresAt      time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GrantAccess
}

func (mock *ledgerClientMock) RevokeAccess(ctx context.Context, contentAddress, granteeWallet string) (ledger.Receipt, error) {
	if mock.RevokeAccessFunc == nil {
		panic("ledgerClientMock.RevokeAccessFunc: method is nil but ledgerClient.RevokeAccess was just called")
	}
	mock.lock.Lock()
	mock.calls.RevokeAccess = append(mock.calls.RevokeAccess, struct {
		Ctx            context.Context
		ContentAddress string
		GranteeWallet  string
	}{ctx, contentAddress, granteeWallet})
	mock.lock.Unlock()
	return mock.RevokeAccessFunc(ctx, contentAddress, granteeWallet)
}

func (mock *ledgerClientMock) RevokeAccessCalls() []struct {
	Ctx            context.Context
	ContentAddress string
	GranteeWallet  string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RevokeAccess
}

var _ mirrorQueue = &mirrorQueueMock{}

type mirrorQueueMock struct {
	EnqueueFunc           func(ctx context.Context, task domain.MirrorTask) error
	CancelForDocumentFunc func(ctx context.Context, documentID uuid.UUID) error

	calls struct {
		Enqueue []struct {
			Ctx  context.Context
			Task domain.MirrorTask
		}
		CancelForDocument []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *mirrorQueueMock) Enqueue(ctx context.Context, task domain.MirrorTask) error {
	if mock.EnqueueFunc == nil {
		panic("mirrorQueueMock.EnqueueFunc: method is nil but mirrorQueue.Enqueue was just called")
	}
	mock.lock.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, struct {
		Ctx  context.Context
		Task domain.MirrorTask
	}{ctx, task})
	mock.lock.Unlock()
	return mock.EnqueueFunc(ctx, task)
}

func (mock *mirrorQueueMock) EnqueueCalls() []struct {
	Ctx  context.Context
	Task domain.MirrorTask
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Enqueue
}

func (mock *mirrorQueueMock) CancelForDocument(ctx context.Context, documentID uuid.UUID) error {
	if mock.CancelForDocumentFunc == nil {
		panic("mirrorQueueMock.CancelForDocumentFunc: method is nil but mirrorQueue.CancelForDocument was just called")
	}
	mock.lock.Lock()
	mock.calls.CancelForDocument = append(mock.calls.CancelForDocument, struct {
		Ctx        context.Context
		DocumentID uuid.UUID
	}{ctx, documentID})
	mock.lock.Unlock()
	return mock.CancelForDocumentFunc(ctx, documentID)
}

func (mock *mirrorQueueMock) CancelForDocumentCalls() []struct {
	Ctx        context.Context
	DocumentID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.CancelForDocument
}
