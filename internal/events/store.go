package events

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

var ErrNotFound = errors.New("event not found")

// Store is the persistence boundary of the events module.
type Store interface {
	List(ctx context.Context, page query.Page) ([]Event, int64, error)
	FindByID(ctx context.Context, id string) (Event, error)
	Insert(ctx context.Context, event Event) (string, error)
	Update(ctx context.Context, id string, in UpdateInput, now time.Time) (Event, error)
	Delete(ctx context.Context, id string) error
}

var listProjection = bson.D{
	{Key: "title", Value: 1},
	{Key: "description", Value: 1},
	{Key: "organizerName", Value: 1},
	{Key: "organizerEmail", Value: 1},
	{Key: "eventDate", Value: 1},
	{Key: "status", Value: 1},
	{Key: "location", Value: 1},
	{Key: "createdAt", Value: 1},
}

// MongoStore persists events in the events collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) List(ctx context.Context, page query.Page) ([]Event, int64, error) {
	match := page.Match("title", "status")

	var (
		docs  []Event
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
		docs = []Event{}
	}
	return docs, total, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Event{}, ErrNotFound
	}
	var event Event
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

func (s *MongoStore) Insert(ctx context.Context, event Event) (string, error) {
	res, err := s.coll.InsertOne(ctx, event)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, in UpdateInput, now time.Time) (Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Event{}, ErrNotFound
	}
	set := in.setFields()
	set["updatedAt"] = now

	var event Event
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	return event, nil
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
