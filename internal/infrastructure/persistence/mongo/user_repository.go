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

// userDoc is the persisted shape of a user. The password field holds
// only the bcrypt digest.
type userDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password"`
	Age           int                `bson:"age"`
	SessionTokens []string           `bson:"sessionTokens"`
	Avatar        []byte             `bson:"avatar,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// UserRepository implements ports.UserRepository on a users collection.
// All session-token mutations use atomic update operators so that
// concurrent logins append rather than overwrite.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDoc{
		ID:            user.ID.ObjectID,
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		Age:           user.Age,
		SessionTokens: []string{},
		Avatar:        user.Avatar,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.ObjectID})
}

func (r *UserRepository) GetByIDWithToken(ctx context.Context, id domain.UserID, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.ObjectID, "sessionTokens": token})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return docToUser(doc), nil
}

func (r *UserRepository) AppendSessionToken(ctx context.Context, id domain.UserID, token string, maxSessions int) error {
	push := bson.M{"$each": []string{token}}
	if maxSessions > 0 {
		// Negative slice keeps the newest entries, evicting the oldest.
		push["$slice"] = -maxSessions
	}
	return r.updateOne(ctx, id, bson.M{
		"$push": bson.M{"sessionTokens": push},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *UserRepository) RemoveSessionToken(ctx context.Context, id domain.UserID, token string) error {
	return r.updateOne(ctx, id, bson.M{
		"$pull": bson.M{"sessionTokens": token},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *UserRepository) ClearSessionTokens(ctx context.Context, id domain.UserID) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{"sessionTokens": []string{}, "updatedAt": time.Now().UTC()},
	})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id domain.UserID, upd ports.UserUpdate) (*domain.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.PasswordHash != nil {
		set["password"] = *upd.PasswordHash
	}
	if upd.Age != nil {
		set["age"] = *upd.Age
	}

	var doc userDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id.ObjectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domerrors.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domerrors.ErrEmailTaken
		}
		return nil, err
	}
	return docToUser(doc), nil
}

func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.ObjectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetAvatar(ctx context.Context, id domain.UserID, avatar []byte) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{"avatar": avatar, "updatedAt": time.Now().UTC()},
	})
}

func (r *UserRepository) ClearAvatar(ctx context.Context, id domain.UserID) error {
	return r.updateOne(ctx, id, bson.M{
		"$unset": bson.M{"avatar": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *UserRepository) updateOne(ctx context.Context, id domain.UserID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id.ObjectID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func docToUser(doc userDoc) *domain.User {
	return &domain.User{
		ID:            domain.NewUserID(doc.ID),
		Name:          doc.Name,
		Email:         doc.Email,
		PasswordHash:  doc.PasswordHash,
		Age:           doc.Age,
		SessionTokens: doc.SessionTokens,
		Avatar:        doc.Avatar,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)
