package user

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "planetpal/api/v1/user"
	"planetpal/internal/common"
	"planetpal/internal/dbmongo"
)

// Handler wires planetpal.v1.UserService to the UserService.
type Handler struct {
	userService UserService
}

var _ pb.UserServiceServer = (*Handler)(nil)

func NewHandler(userService UserService) *Handler {
	return &Handler{userService: userService}
}

func (h *Handler) Signup(ctx context.Context, req *pb.SignupRequest) (*pb.AuthResponse, error) {
	acc, token, err := h.userService.Signup(ctx, SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		PlanetName:  req.PlanetName,
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidInput):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrEmailTaken):
		return nil, status.Error(codes.AlreadyExists, err.Error())
	default:
		return nil, status.Error(codes.Internal, "signup failed")
	}
	return &pb.AuthResponse{Token: token, Profile: toProfile(acc)}, nil
}

func (h *Handler) Login(ctx context.Context, req *pb.LoginRequest) (*pb.AuthResponse, error) {
	acc, token, err := h.userService.Login(ctx, req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return nil, status.Error(codes.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "login failed")
	}
	return &pb.AuthResponse{Token: token, Profile: toProfile(acc)}, nil
}

func (h *Handler) Profile(ctx context.Context, _ *pb.ProfileRequest) (*pb.Profile, error) {
	sess, ok := common.SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}

	acc, err := h.userService.GetProfile(ctx, sess.AccountID)
	if errors.Is(err, dbmongo.ErrNotFound) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	profile := toProfile(acc)
	return &profile, nil
}

func toProfile(acc *dbmongo.Account) pb.Profile {
	return pb.Profile{
		ID:           acc.ID,
		Email:        acc.Email,
		DisplayName:  acc.DisplayName,
		PlanetName:   acc.PlanetName,
		FriendCount:  acc.FriendCount,
		PlanetHealth: acc.PlanetHealth,
		CreatedAt:    acc.CreatedAt,
	}
}
