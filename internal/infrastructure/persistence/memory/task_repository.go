package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// TaskRepository is an in-memory ports.TaskRepository for tests and
// database-free runs.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[domain.TaskID]*domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[domain.TaskID]*domain.Task)}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *task
	r.tasks[task.ID] = &c
	return nil
}

func (r *TaskRepository) GetByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner domain.UserID, filter ports.TaskFilter) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.Owner != owner {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortCreatedAt < 0 {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if filter.Skip > 0 {
		if filter.Skip >= int64(len(out)) {
			return nil, nil
		}
		out = out[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < int64(len(out)) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *TaskRepository) UpdateByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID, upd ports.TaskUpdate) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return nil, nil
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	c := *t
	return &c, nil
}

func (r *TaskRepository) DeleteByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return domerrors.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) PurgeOwner(ctx context.Context, owner domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tasks {
		if t.Owner == owner {
			delete(r.tasks, id)
		}
	}
	return nil
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
