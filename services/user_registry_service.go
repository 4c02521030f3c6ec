package services

import (
	"context"
	"fmt"

	"anonrelay_server/models"
)

// UserRegistryService is the durable, append-only set of every handle that
// has ever interacted with the relay. Used only for broadcast fan-out.
type UserRegistryService struct {
	Dynamo *DynamoService
}

// RecordUser inserts a handle into the registry. PutItem on the handle key
// makes repeated registration a no-op.
func (s *UserRegistryService) RecordUser(ctx context.Context, handle models.Handle) error {
	user := models.RegisteredUser{Handle: handle}
	if err := s.Dynamo.PutItem(ctx, models.RelayUsersTable, user); err != nil {
		return fmt.Errorf("failed to register user %d: %w", handle, err)
	}
	return nil
}

// ListUsers returns every registered handle. Order is not meaningful.
func (s *UserRegistryService) ListUsers(ctx context.Context) ([]models.Handle, error) {
	var users []models.RegisteredUser
	if err := s.Dynamo.ScanAllItems(ctx, models.RelayUsersTable, &users); err != nil {
		return nil, fmt.Errorf("failed to list registered users: %w", err)
	}

	handles := make([]models.Handle, 0, len(users))
	for _, u := range users {
		handles = append(handles, u.Handle)
	}
	return handles, nil
}
