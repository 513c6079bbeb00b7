package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
)

const maxNameLen = 200

// AddUserInput holds the parameters for creating a directory entry.
type AddUserInput struct {
	Name  string
	Email *string
}

func (in AddUserInput) Validate() error {
	var fields []domain.FieldError

	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, domain.FieldError{Field: "name", Message: "must not be empty"})
	} else if len(in.Name) > maxNameLen {
		fields = append(fields, domain.FieldError{Field: "name", Message: "too long"})
	}

	if in.Email != nil && !strings.Contains(*in.Email, "@") {
		fields = append(fields, domain.FieldError{Field: "email", Message: "must contain @"})
	}

	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// AddUser creates a directory entry.
func (s *Service) AddUser(ctx context.Context, input AddUserInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(input.Name),
		Email: input.Email,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.users.Create(txCtx, user)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		user = created

		return s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeUser,
			EntityID:   &user.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"name": user.Name},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user added", slog.String("user_id", user.ID.String()))

	return user, nil
}
