package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Owner       primitive.ObjectID `bson:"owner"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// TaskRepository implements ports.TaskRepository on a tasks collection.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.col.InsertOne(ctx, taskDoc{
		ID:          task.ID.ObjectID,
		Owner:       task.Owner.ObjectID,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	})
	return err
}

func (r *TaskRepository) GetByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID) (*domain.Task, error) {
	var doc taskDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id.ObjectID, "owner": owner.ObjectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return docToTask(doc), nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner domain.UserID, filter ports.TaskFilter) ([]*domain.Task, error) {
	query := bson.M{"owner": owner.ObjectID}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}
	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}
	if filter.SortCreatedAt != 0 {
		opts.SetSort(bson.D{{Key: "createdAt", Value: filter.SortCreatedAt}})
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	for cur.Next(ctx) {
		var doc taskDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		tasks = append(tasks, docToTask(doc))
	}
	return tasks, cur.Err()
}

func (r *TaskRepository) UpdateByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID, upd ports.TaskUpdate) (*domain.Task, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Completed != nil {
		set["completed"] = *upd.Completed
	}

	var doc taskDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id.ObjectID, "owner": owner.ObjectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return docToTask(doc), nil
}

func (r *TaskRepository) DeleteByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.ObjectID, "owner": owner.ObjectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) PurgeOwner(ctx context.Context, owner domain.UserID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"owner": owner.ObjectID})
	return err
}

func docToTask(doc taskDoc) *domain.Task {
	return &domain.Task{
		ID:          domain.NewTaskID(doc.ID),
		Owner:       domain.NewUserID(doc.Owner),
		Description: doc.Description,
		Completed:   doc.Completed,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
