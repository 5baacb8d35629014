package parks

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

var ErrNotFound = errors.New("park not found")

// Store is the persistence boundary of the parks module.
type Store interface {
	List(ctx context.Context, page query.Page) ([]Park, int64, error)
	FindByID(ctx context.Context, id string) (Park, error)
	Insert(ctx context.Context, park Park) (string, error)
	Update(ctx context.Context, id string, in UpdateInput, now time.Time) (Park, error)
	Delete(ctx context.Context, id string) error
}

var listProjection = bson.D{
	{Key: "name", Value: 1},
	{Key: "condition", Value: 1},
	{Key: "lastInspected", Value: 1},
	{Key: "images", Value: 1},
	{Key: "createdAt", Value: 1},
}

// MongoStore persists parks in the parks collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) List(ctx context.Context, page query.Page) ([]Park, int64, error) {
	match := page.Match("name", "condition")

	var (
		docs  []Park
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
		docs = []Park{}
	}
	return docs, total, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (Park, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Park{}, ErrNotFound
	}
	var park Park
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&park)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Park{}, ErrNotFound
	}
	if err != nil {
		return Park{}, err
	}
	return park, nil
}

func (s *MongoStore) Insert(ctx context.Context, park Park) (string, error) {
	res, err := s.coll.InsertOne(ctx, park)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, in UpdateInput, now time.Time) (Park, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Park{}, ErrNotFound
	}
	set := in.setFields()
	set["updatedAt"] = now

	var park Park
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&park)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Park{}, ErrNotFound
	}
	if err != nil {
		return Park{}, err
	}
	return park, nil
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
