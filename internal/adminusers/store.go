package adminusers

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"jirantetangga/internal/query"
)

var ErrNotFound = errors.New("admin user not found")

// Store is the persistence boundary of the admin-user module. The auth module
// shares it for login lookups.
type Store interface {
	List(ctx context.Context, page query.Page, emailExact string) ([]AdminUser, int64, error)
	FindByID(ctx context.Context, id string) (AdminUser, error)
	FindByEmail(ctx context.Context, email string) (AdminUser, error)
	Insert(ctx context.Context, user AdminUser) (string, error)
	Update(ctx context.Context, id string, in UpdateInput, now time.Time) (AdminUser, error)
	Delete(ctx context.Context, id string) error
}

// Password is excluded from every list response.
var listProjection = bson.D{
	{Key: "firstName", Value: 1},
	{Key: "lastName", Value: 1},
	{Key: "email", Value: 1},
	{Key: "phone", Value: 1},
	{Key: "createdAt", Value: 1},
}

// MongoStore persists administrators in the admin_user collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// List searches by email substring; emailExact narrows to one address when the
// caller passes the legacy ?email= filter.
func (s *MongoStore) List(ctx context.Context, page query.Page, emailExact string) ([]AdminUser, int64, error) {
	match := page.Match("email", "")
	if emailExact != "" {
		match["email"] = emailExact
	}

	var (
		docs  []AdminUser
		total int64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetProjection(listProjection).
			SetSort(query.Sort()).
			SetSkip(page.Skip()).
			SetLimit(page.Limit())
		cur, err := s.coll.Find(ctx, match, opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	g.Go(func() error {
		n, err := s.coll.CountDocuments(ctx, match)
		total = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if docs == nil {
		docs = []AdminUser{}
	}
	return docs, total, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (AdminUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return AdminUser{}, ErrNotFound
	}
	var user AdminUser
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return AdminUser{}, ErrNotFound
	}
	if err != nil {
		return AdminUser{}, err
	}
	return user, nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (AdminUser, error) {
	var user AdminUser
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return AdminUser{}, ErrNotFound
	}
	if err != nil {
		return AdminUser{}, err
	}
	return user, nil
}

func (s *MongoStore) Insert(ctx context.Context, user AdminUser) (string, error) {
	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, in UpdateInput, now time.Time) (AdminUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return AdminUser{}, ErrNotFound
	}
	set := in.setFields()
	set["updatedAt"] = now

	var user AdminUser
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return AdminUser{}, ErrNotFound
	}
	if err != nil {
		return AdminUser{}, err
	}
	return user, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
