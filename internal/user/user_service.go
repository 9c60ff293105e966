package user

//go:generate mockgen -source=user_service.go -destination=mock_service.go -package=user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"planetpal/internal/common"
	"planetpal/internal/dbmongo"
	"planetpal/internal/dbmysql"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
)

type SignupInput struct {
	Email       string `validate:"required,email,max=255"`
	Password    string `validate:"required,min=6,max=100"`
	DisplayName string `validate:"required,min=1,max=50"`
	PlanetName  string `validate:"required,min=1,max=50"`
}

type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*dbmongo.Account, string, error)
	Login(ctx context.Context, email, password string) (*dbmongo.Account, string, error)
	GetProfile(ctx context.Context, accountID string) (*dbmongo.Account, error)
}

type userService struct {
	credentials CredentialRepository
	accounts    AccountRepository
	tokens      *common.TokenManager
	now         func() time.Time
}

func NewUserService(credentials CredentialRepository, accounts AccountRepository, tokens *common.TokenManager) UserService {
	return &userService{
		credentials: credentials,
		accounts:    accounts,
		tokens:      tokens,
		now:         time.Now,
	}
}

// Signup registers a new account and returns it with a session token.
func (s *userService) Signup(ctx context.Context, in SignupInput) (*dbmongo.Account, string, error) {
	in.Email = common.NormalizeEmail(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.PlanetName = strings.TrimSpace(in.PlanetName)
	if err := common.ValidateStruct(in); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.credentials.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := common.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	accountID := uuid.NewString()
	cred := &dbmysql.Credential{
		AccountID:    accountID,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	acc := &dbmongo.Account{
		ID:           accountID,
		DisplayName:  in.DisplayName,
		PlanetName:   in.PlanetName,
		Email:        in.Email,
		PlanetHealth: dbmongo.DefaultPlanetHealth,
		CreatedAt:    s.now(),
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if delErr := s.credentials.Delete(ctx, accountID); delErr != nil {
			slog.Error("failed to roll back credential", "account", accountID, "error", delErr)
		}
		return nil, "", err
	}

	token, err := s.tokens.Generate(accountID, in.Email)
	if err != nil {
		return nil, "", err
	}

	slog.Info("account created", "account", accountID)
	return acc, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*dbmongo.Account, string, error) {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	cred, err := s.credentials.ByEmail(ctx, email)
	if errors.Is(err, ErrCredentialNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := common.CheckPassword(password, cred.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	acc, err := s.accounts.ByID(ctx, cred.AccountID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(cred.AccountID, cred.Email)
	if err != nil {
		return nil, "", err
	}
	return acc, token, nil
}

func (s *userService) GetProfile(ctx context.Context, accountID string) (*dbmongo.Account, error) {
	return s.accounts.ByID(ctx, accountID)
}
