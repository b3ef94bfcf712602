package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/memory"
)

func newOwner() domain.UserID {
	return domain.NewUserID(primitive.NewObjectID())
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewTaskRepository())
	owner := newOwner()

	created, err := svc.Create(ctx, owner, "  walk the dog  ", false)
	require.NoError(t, err)
	assert.Equal(t, "walk the dog", created.Description)
	assert.Equal(t, owner, created.Owner)
	assert.False(t, created.Completed)

	_, err = svc.Create(ctx, owner, "   ", false)
	ve, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Problems, "description is required")
}

func TestTasksAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewTaskRepository())
	owner, stranger := newOwner(), newOwner()

	created, err := svc.Create(ctx, owner, "walk the dog", false)
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID, stranger)
	require.ErrorIs(t, err, domerrors.ErrNotFound)

	desc := "steal the dog"
	_, err = svc.Update(ctx, created.ID, stranger, UpdateInput{Description: &desc})
	require.ErrorIs(t, err, domerrors.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID, stranger), domerrors.ErrNotFound)

	got, err := svc.Get(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "walk the dog", got.Description)
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewTaskRepository())
	owner := newOwner()

	created, err := svc.Create(ctx, owner, "walk the dog", false)
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(ctx, created.ID, owner, UpdateInput{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "walk the dog", updated.Description)

	empty := ""
	_, err = svc.Update(ctx, created.ID, owner, UpdateInput{Description: &empty})
	_, ok := domerrors.AsValidation(err)
	require.True(t, ok)
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewTaskRepository())
	owner := newOwner()

	for i, desc := range []string{"one", "two", "three", "four"} {
		_, err := svc.Create(ctx, owner, desc, i%2 == 0)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, owner, ports.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	done := true
	completed, err := svc.List(ctx, owner, ports.TaskFilter{Completed: &done})
	require.NoError(t, err)
	require.Len(t, completed, 2)
	for _, task := range completed {
		assert.True(t, task.Completed)
	}

	page, err := svc.List(ctx, owner, ports.TaskFilter{Limit: 2, Skip: 1})
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
