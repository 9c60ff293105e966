package relationship

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("validation error")
	ErrAlreadyFriends        = errors.New("already friends")
	ErrRequestAlreadyPending = errors.New("friend request already pending")
	ErrIncomingRequestExists = errors.New("incoming friend request exists, accept it instead")
	ErrRequestNotFound       = errors.New("friend request not found")
	ErrAccountNotFound       = errors.New("account not found")
	ErrNotFriends            = errors.New("accounts are not friends")
	ErrNotRecipient          = errors.New("only the recipient can answer a friend request")
	ErrNotSender             = errors.New("only the sender can cancel a friend request")
	ErrSubscriptionClosed    = errors.New("subscription closed by the store")
)

// StoreError is any failure of the underlying document store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
