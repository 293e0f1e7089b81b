package mock

import (
	"context"

	"github.com/fwojciec/keepimport"
)

var _ keepimport.UserService = (*UserService)(nil)

// UserService is a mock implementation of keepimport.UserService.
type UserService struct {
	CreateUserFn           func(ctx context.Context, user *keepimport.User) error
	FindUserByExternalIDFn func(ctx context.Context, externalID string) (*keepimport.User, error)
	FindOrCreateUserFn     func(ctx context.Context, externalID string) (*keepimport.User, error)
	DeleteUserFn           func(ctx context.Context, id string) error
}

func (s *UserService) CreateUser(ctx context.Context, user *keepimport.User) error {
	return s.CreateUserFn(ctx, user)
}

func (s *UserService) FindUserByExternalID(ctx context.Context, externalID string) (*keepimport.User, error) {
	return s.FindUserByExternalIDFn(ctx, externalID)
}

func (s *UserService) FindOrCreateUser(ctx context.Context, externalID string) (*keepimport.User, error) {
	return s.FindOrCreateUserFn(ctx, externalID)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.DeleteUserFn(ctx, id)
}
