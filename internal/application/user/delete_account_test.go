package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/application/task"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/memory"
)

func TestDeleteAccountCascadesOverTasks(t *testing.T) {
	ctx := context.Background()
	userRepo := memory.NewUserRepository()
	taskRepo := memory.NewTaskRepository()
	notify := &spyEnqueuer{}
	signUp := newSignUp(userRepo, notify, 10)
	tasks := task.NewService(taskRepo)
	uc := NewDeleteAccount(userRepo, taskRepo, notify)

	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)
	other, err := signUp.Execute(ctx, SignUpInput{Name: "Other", Email: "other@example.com", Password: "red12345"})
	require.NoError(t, err)

	_, err = tasks.Create(ctx, created.User.ID, "walk the dog", false)
	require.NoError(t, err)
	_, err = tasks.Create(ctx, created.User.ID, "buy groceries", true)
	require.NoError(t, err)
	kept, err := tasks.Create(ctx, other.User.ID, "water the plants", false)
	require.NoError(t, err)

	require.NoError(t, uc.Execute(ctx, created.User))

	gone, err := userRepo.GetByID(ctx, created.User.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	mine, err := taskRepo.ListByOwner(ctx, created.User.ID, ports.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine, "owner's tasks are purged with the account")

	theirs, err := taskRepo.ListByOwner(ctx, other.User.ID, ports.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, kept.ID, theirs[0].ID)

	assert.Equal(t, []string{"julie@example.com"}, notify.goodbye)
}
