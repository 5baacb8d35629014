package shops

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

// ErrNotFound is returned for lookups, updates, and deletes that match no
// document, including syntactically invalid ids.
var ErrNotFound = errors.New("shop not found")

// Store is the persistence boundary of the shops module.
type Store interface {
	List(ctx context.Context, page query.Page) ([]Shop, int64, error)
	FindByID(ctx context.Context, id string) (Shop, error)
	Insert(ctx context.Context, shop Shop) (string, error)
	Update(ctx context.Context, id string, in UpdateInput, now time.Time) (Shop, error)
	Delete(ctx context.Context, id string) error
}

// listProjection trims list responses to the card fields the directory view
// renders.
var listProjection = bson.D{
	{Key: "name", Value: 1},
	{Key: "description", Value: 1},
	{Key: "category", Value: 1},
	{Key: "status", Value: 1},
	{Key: "images", Value: 1},
	{Key: "createdAt", Value: 1},
}

// MongoStore persists shops in the shops collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// List runs the page query and the total count concurrently; both share the
// same match clause.
func (s *MongoStore) List(ctx context.Context, page query.Page) ([]Shop, int64, error) {
	match := page.Match("name", "status")

	var (
		docs  []Shop
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
		docs = []Shop{}
	}
	return docs, total, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Shop{}, ErrNotFound
	}
	var shop Shop
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Shop{}, ErrNotFound
	}
	if err != nil {
		return Shop{}, err
	}
	return shop, nil
}

func (s *MongoStore) Insert(ctx context.Context, shop Shop) (string, error) {
	res, err := s.coll.InsertOne(ctx, shop)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, in UpdateInput, now time.Time) (Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Shop{}, ErrNotFound
	}
	set := in.setFields()
	set["updatedAt"] = now

	var shop Shop
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Shop{}, ErrNotFound
	}
	if err != nil {
		return Shop{}, err
	}
	return shop, nil
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
