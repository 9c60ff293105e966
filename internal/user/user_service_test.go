package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"planetpal/internal/common"
	"planetpal/internal/config"
	"planetpal/internal/dbmongo"
	"planetpal/internal/dbmysql"
)

func testTokens() *common.TokenManager {
	return common.NewTokenManager(&config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	})
}

func TestUserService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := NewMockCredentialRepository(ctrl)
	accounts := NewMockAccountRepository(ctrl)
	tokens := testTokens()
	svc := NewUserService(creds, accounts, tokens)
	ctx := context.Background()

	valid := SignupInput{
		Email:       "  Alice@Example.com ",
		Password:    "secret123",
		DisplayName: "Alice",
		PlanetName:  "Aurora",
	}

	tests := []struct {
		name    string
		in      SignupInput
		setup   func()
		wantErr error
	}{
		{
			name: "success",
			in:   valid,
			setup: func() {
				creds.EXPECT().EmailExists(ctx, "alice@example.com").Return(false, nil)
				creds.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, c *dbmysql.Credential) error {
						require.NotEmpty(t, c.AccountID)
						require.Equal(t, "alice@example.com", c.Email)
						require.NoError(t, common.CheckPassword("secret123", c.PasswordHash))
						return nil
					})
				accounts.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, a *dbmongo.Account) error {
						require.Equal(t, "Alice", a.DisplayName)
						require.Equal(t, float64(dbmongo.DefaultPlanetHealth), a.PlanetHealth)
						return nil
					})
			},
		},
		{
			name: "email taken",
			in:   valid,
			setup: func() {
				creds.EXPECT().EmailExists(ctx, "alice@example.com").Return(true, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "email taken by concurrent signup",
			in:   valid,
			setup: func() {
				creds.EXPECT().EmailExists(ctx, "alice@example.com").Return(false, nil)
				creds.EXPECT().Create(ctx, gomock.Any()).Return(ErrEmailTaken)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:    "invalid email",
			in:      SignupInput{Email: "nope", Password: "secret123", DisplayName: "A", PlanetName: "B"},
			setup:   func() {},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "short password",
			in:      SignupInput{Email: "a@x.com", Password: "123", DisplayName: "A", PlanetName: "B"},
			setup:   func() {},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "blank planet name",
			in:      SignupInput{Email: "a@x.com", Password: "secret123", DisplayName: "A", PlanetName: "   "},
			setup:   func() {},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			acc, token, err := svc.Signup(ctx, tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, acc)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := tokens.Validate(token)
			require.NoError(t, err)
			require.Equal(t, acc.ID, claims.AccountID)
		})
	}
}

func TestUserService_SignupRollsBackCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := NewMockCredentialRepository(ctrl)
	accounts := NewMockAccountRepository(ctrl)
	svc := NewUserService(creds, accounts, testTokens())
	ctx := context.Background()

	var accountID string
	creds.EXPECT().EmailExists(ctx, "bea@example.com").Return(false, nil)
	creds.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, c *dbmysql.Credential) error {
			accountID = c.AccountID
			return nil
		})
	accounts.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("mongo down"))
	creds.EXPECT().Delete(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) error {
			require.Equal(t, accountID, id)
			return nil
		})

	_, _, err := svc.Signup(ctx, SignupInput{
		Email: "bea@example.com", Password: "secret123", DisplayName: "Bea", PlanetName: "Blue",
	})
	require.EqualError(t, err, "mongo down")
}

func TestUserService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := NewMockCredentialRepository(ctrl)
	accounts := NewMockAccountRepository(ctrl)
	svc := NewUserService(creds, accounts, testTokens())
	ctx := context.Background()

	hash, err := common.HashPassword("secret123")
	require.NoError(t, err)
	cred := &dbmysql.Credential{AccountID: "u1", Email: "alice@example.com", PasswordHash: hash}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func()
		wantErr  error
	}{
		{
			name:     "success",
			email:    "ALICE@example.com",
			password: "secret123",
			setup: func() {
				creds.EXPECT().ByEmail(ctx, "alice@example.com").Return(cred, nil)
				accounts.EXPECT().ByID(ctx, "u1").Return(&dbmongo.Account{ID: "u1", DisplayName: "Alice"}, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrong",
			setup: func() {
				creds.EXPECT().ByEmail(ctx, "alice@example.com").Return(cred, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "secret123",
			setup: func() {
				creds.EXPECT().ByEmail(ctx, "ghost@example.com").Return(nil, ErrCredentialNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			email:    "alice@example.com",
			password: "",
			setup:    func() {},
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			acc, token, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "u1", acc.ID)
			require.NotEmpty(t, token)
		})
	}
}

func TestUserService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := NewMockAccountRepository(ctrl)
	svc := NewUserService(NewMockCredentialRepository(ctrl), accounts, testTokens())
	ctx := context.Background()

	accounts.EXPECT().ByID(ctx, "missing").Return(nil, dbmongo.ErrNotFound)
	_, err := svc.GetProfile(ctx, "missing")
	require.ErrorIs(t, err, dbmongo.ErrNotFound)
}
