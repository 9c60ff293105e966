package relationship

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"planetpal/api/v1/codec"
	pb "planetpal/api/v1/relationship"
	"planetpal/internal/common"
	"planetpal/internal/dbmongo"
)

// Handler exposes the manager as planetpal.v1.RelationshipService. The
// caller's account always comes from the authenticated session.
type Handler struct {
	manager *Manager
}

var _ pb.RelationshipServiceServer = (*Handler)(nil)

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) Search(ctx context.Context, req *pb.SearchRequest) (*pb.SearchResponse, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := h.manager.Search(ctx, sess.AccountID, req.Query)
	if err != nil {
		return nil, toStatus(err)
	}

	out := &pb.SearchResponse{Accounts: make([]pb.Account, 0, len(accounts))}
	for _, acc := range accounts {
		out.Accounts = append(out.Accounts, pb.Account{
			ID:          acc.ID,
			DisplayName: acc.DisplayName,
			PlanetName:  acc.PlanetName,
			FriendCount: acc.FriendCount,
		})
	}
	return out, nil
}

func (h *Handler) Status(ctx context.Context, req *pb.StatusRequest) (*pb.StatusResponse, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	st, err := h.manager.Status(ctx, sess.AccountID, req.OtherID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.StatusResponse{Status: string(st)}, nil
}

func (h *Handler) Snapshot(ctx context.Context, _ *pb.SnapshotRequest) (*pb.Snapshot, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := h.manager.Snapshot(ctx, sess.AccountID)
	if err != nil {
		return nil, toStatus(err)
	}
	out := toPBSnapshot(snap)
	return &out, nil
}

func (h *Handler) SendRequest(ctx context.Context, req *pb.SendRequestRequest) (*pb.SendRequestResponse, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	fr, err := h.manager.SendRequest(ctx, sess.AccountID, req.ToID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.SendRequestResponse{Request: toPBRequest(fr)}, nil
}

func (h *Handler) AcceptRequest(ctx context.Context, req *pb.RequestRef) (*pb.AcceptRequestResponse, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	f, err := h.manager.AcceptRequest(ctx, sess.AccountID, req.RequestID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.AcceptRequestResponse{Friendship: pb.Friendship{
		ID:          f.ID,
		Users:       f.Users,
		RequestedBy: f.RequestedBy,
		Status:      f.Status,
		AcceptedAt:  f.AcceptedAt,
	}}, nil
}

func (h *Handler) RejectRequest(ctx context.Context, req *pb.RequestRef) (*pb.Empty, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.manager.RejectRequest(ctx, sess.AccountID, req.RequestID); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (h *Handler) CancelRequest(ctx context.Context, req *pb.RequestRef) (*pb.Empty, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.manager.CancelRequest(ctx, sess.AccountID, req.RequestID); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (h *Handler) ListFriends(ctx context.Context, _ *pb.ListFriendsRequest) (*pb.ListFriendsResponse, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	friends, err := h.manager.ListFriends(ctx, sess.AccountID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListFriendsResponse{Friends: toPBFriends(friends)}, nil
}

func (h *Handler) FriendPlanet(ctx context.Context, req *pb.FriendPlanetRequest) (*pb.Planet, error) {
	sess, err := session(ctx)
	if err != nil {
		return nil, err
	}
	view, err := h.manager.FriendPlanet(ctx, sess.AccountID, req.FriendID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.Planet{
		AccountID:    view.AccountID,
		DisplayName:  view.DisplayName,
		PlanetName:   view.PlanetName,
		PlanetHealth: view.PlanetHealth,
	}, nil
}

// Watch streams a snapshot on subscribe and after every change until the
// client goes away.
func (h *Handler) Watch(_ *pb.WatchRequest, stream codec.Sender[pb.WatchEvent]) error {
	ctx := stream.Context()
	sess, err := session(ctx)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	fail := func(err error) {
		select {
		case errc <- err:
		default:
		}
	}

	sub, err := h.manager.Subscribe(ctx, sess.AccountID, func(u Update) {
		if u.Err != nil {
			if errors.Is(u.Err, ErrSubscriptionClosed) {
				fail(u.Err)
			}
			return
		}
		ev := &pb.WatchEvent{Kind: string(u.Kind), Snapshot: toPBSnapshot(u.Snapshot)}
		if err := stream.Send(ev); err != nil {
			fail(err)
		}
	})
	if err != nil {
		return toStatus(err)
	}
	defer sub.Close()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errc:
		return toStatus(err)
	}
}

func session(ctx context.Context) (common.Session, error) {
	sess, ok := common.SessionFromContext(ctx)
	if !ok {
		return common.Session{}, status.Error(codes.Unauthenticated, "user not authenticated")
	}
	return sess, nil
}

func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrAlreadyFriends),
		errors.Is(err, ErrRequestAlreadyPending),
		errors.Is(err, ErrIncomingRequestExists):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrNotFriends):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrNotRecipient), errors.Is(err, ErrNotSender):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case IsStoreError(err), errors.Is(err, ErrSubscriptionClosed):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toPBSnapshot(snap *Snapshot) pb.Snapshot {
	return pb.Snapshot{
		Friends:  toPBFriends(snap.Friends),
		Sent:     toPBRequests(snap.Sent),
		Received: toPBRequests(snap.Received),
	}
}

func toPBFriends(friends []FriendSummary) []pb.Friend {
	out := make([]pb.Friend, 0, len(friends))
	for _, f := range friends {
		out = append(out, pb.Friend{
			ID:          f.AccountID,
			DisplayName: f.DisplayName,
			PlanetName:  f.PlanetName,
			Since:       f.Since,
		})
	}
	return out
}

func toPBRequests(reqs []*dbmongo.FriendRequest) []pb.Request {
	out := make([]pb.Request, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toPBRequest(r))
	}
	return out
}

func toPBRequest(r *dbmongo.FriendRequest) pb.Request {
	return pb.Request{
		ID:        r.ID,
		FromID:    r.FromID,
		ToID:      r.ToID,
		FromName:  r.FromName,
		ToName:    r.ToName,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
