package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
)

// UserRepository persists users through the generic store dispatcher.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	var doc userDoc
	_, err := r.store.Execute(ctx, CollectionUsers, OpFindOne, Params{
		Query: bson.M{"$or": bson.A{
			bson.M{"email": identifier},
			bson.M{"username": identifier},
		}},
		Result: &doc,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	result, err := r.store.Execute(ctx, CollectionUsers, OpCount, Params{
		Query: bson.M{"$or": bson.A{
			bson.M{"email": email},
			bson.M{"username": username},
		}},
	})
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	count, _ := result.(int64)
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDoc{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Unix(),
		UpdatedAt: user.UpdatedAt.Unix(),
	}

	result, err := r.store.Execute(ctx, CollectionUsers, OpCreate, Params{Object: doc})
	if err != nil {
		// A lost race against the unique index reads the same as the
		// pre-check catching the duplicate.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if res, ok := result.(*mongo.InsertOneResult); ok {
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			created.ID = id.Hex()
		}
	}
	return &created, nil
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         d.Role,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
