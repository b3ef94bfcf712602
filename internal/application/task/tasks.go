package task

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// Service orchestrates owner-scoped task CRUD. Tasks carry no logic of
// their own beyond ownership, so a single service covers all of it.
type Service struct {
	tasks ports.TaskRepository
}

func NewService(tasks ports.TaskRepository) *Service {
	return &Service{tasks: tasks}
}

func (s *Service) Create(ctx context.Context, owner domain.UserID, description string, completed bool) (*domain.Task, error) {
	description = strings.TrimSpace(description)
	if problems := domain.TaskProblems(description); len(problems) > 0 {
		return nil, domerrors.NewValidation(problems...)
	}
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          domain.NewTaskID(primitive.NewObjectID()),
		Owner:       owner,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id domain.TaskID, owner domain.UserID) (*domain.Task, error) {
	t, err := s.tasks.GetByOwner(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrNotFound
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, owner domain.UserID, filter ports.TaskFilter) ([]*domain.Task, error) {
	return s.tasks.ListByOwner(ctx, owner, filter)
}

// UpdateInput holds the allow-listed task fields; nil means unchanged.
type UpdateInput struct {
	Description *string
	Completed   *bool
}

func (s *Service) Update(ctx context.Context, id domain.TaskID, owner domain.UserID, input UpdateInput) (*domain.Task, error) {
	upd := ports.TaskUpdate{Completed: input.Completed}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if problems := domain.TaskProblems(desc); len(problems) > 0 {
			return nil, domerrors.NewValidation(problems...)
		}
		upd.Description = &desc
	}
	t, err := s.tasks.UpdateByOwner(ctx, id, owner, upd)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrNotFound
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id domain.TaskID, owner domain.UserID) error {
	return s.tasks.DeleteByOwner(ctx, id, owner)
}
