package user

//go:generate mockgen -source=credential_repository.go -destination=mock_repository.go -package=user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"planetpal/internal/dbmongo"
	"planetpal/internal/dbmysql"
)

var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository stores login secrets in MySQL.
type CredentialRepository interface {
	Create(ctx context.Context, cred *dbmysql.Credential) error
	ByEmail(ctx context.Context, email string) (*dbmysql.Credential, error)
	ByAccountID(ctx context.Context, accountID string) (*dbmysql.Credential, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, accountID string) error
}

// AccountRepository stores the public account documents. It is satisfied
// by *dbmongo.AccountStore.
type AccountRepository interface {
	Create(ctx context.Context, acc *dbmongo.Account) error
	ByID(ctx context.Context, id string) (*dbmongo.Account, error)
	Delete(ctx context.Context, id string) error
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(ctx context.Context, cred *dbmysql.Credential) error {
	return createErr(r.db.WithContext(ctx).Create(cred).Error)
}

// createErr maps a lost race on the unique email index to ErrEmailTaken.
// The driver error is only translated when the DB was opened with
// TranslateError.
func createErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *credentialRepository) ByEmail(ctx context.Context, email string) (*dbmysql.Credential, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *credentialRepository) ByAccountID(ctx context.Context, accountID string) (*dbmysql.Credential, error) {
	return r.first(ctx, "account_id = ?", accountID)
}

func (r *credentialRepository) first(ctx context.Context, query string, arg string) (*dbmysql.Credential, error) {
	var cred dbmysql.Credential
	err := r.db.WithContext(ctx).Where(query, arg).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Credential{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *credentialRepository) Delete(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).Delete(&dbmysql.Credential{}, "account_id = ?", accountID).Error
}
