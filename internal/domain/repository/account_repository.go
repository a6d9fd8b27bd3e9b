package repository

import "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/entity"

// AccountRepository defines the interface for account persistence.
// Uniqueness of email is owned by the store; Create reports a duplicate
// through ErrDuplicateEmail regardless of any pre-check the caller did.
type AccountRepository interface {
	Create(a *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
	Update(a *entity.Account) error
	Delete(id string) error
	List() ([]*entity.Account, error)
	SetVerified(id string) error
}
