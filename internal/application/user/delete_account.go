package user

import (
	"context"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
)

// DeleteAccount removes the user and cascades over their tasks. Tasks
// are purged before the user document is deleted: a failure between
// the steps leaves an intact user with no tasks, never a deleted user
// with live sessions elsewhere.
type DeleteAccount struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	notify ports.NotificationEnqueuer
}

func NewDeleteAccount(users ports.UserRepository, tasks ports.TaskRepository, notify ports.NotificationEnqueuer) *DeleteAccount {
	return &DeleteAccount{users: users, tasks: tasks, notify: notify}
}

func (uc *DeleteAccount) Execute(ctx context.Context, u *domain.User) error {
	if err := uc.tasks.PurgeOwner(ctx, u.ID); err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	// Fire-and-forget: a queue failure never fails the deletion.
	_ = uc.notify.EnqueueGoodbyeEmail(ctx, u.Email, u.Name)
	return nil
}
