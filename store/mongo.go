package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/mwangikb/event-planner-go/models"
)

const (
	eventsCollection   = "events"
	sessionsCollection = "sessions"
)

// eventDoc pairs the stored fields with the Mongo-assigned id.
type eventDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	models.Event `bson:",inline"`
}

type MongoEventStore struct {
	col *mongo.Collection
}

func NewMongoEventStore(db *mongo.Database) *MongoEventStore {
	return &MongoEventStore{col: db.Collection(eventsCollection)}
}

func (s *MongoEventStore) List(ctx context.Context) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var docs []eventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		ev := doc.Event
		ev.ID = doc.ID.Hex()
		events = append(events, ev)
	}
	SortEvents(events)
	return events, nil
}

func (s *MongoEventStore) Get(ctx context.Context, id string) (models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Event{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc eventDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Event{}, ErrNotFound
		}
		return models.Event{}, err
	}
	ev := doc.Event
	ev.ID = doc.ID.Hex()
	return ev, nil
}

func (s *MongoEventStore) Create(ctx context.Context, ev models.Event) (string, error) {
	ev.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.col.InsertOne(ctx, eventDoc{Event: ev})
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoEventStore) Update(ctx context.Context, id string, ev models.Event) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// One atomic $set over every mutable field; created_at is left alone.
	set := bson.M{
		"title":            ev.Title,
		"event_date":       ev.EventDate,
		"start_time":       ev.StartTime,
		"end_time":         ev.EndTime,
		"description":      ev.Description,
		"resources":        ev.Resources,
		"responsible":      ev.Responsible,
		"event_type":       ev.EventType,
		"participant_info": ev.ParticipantInfo,
	}
	update := bson.M{"$set": set}
	if ev.ImageURL != "" {
		set["image_url"] = ev.ImageURL
	} else {
		update["$unset"] = bson.M{"image_url": ""}
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoEventStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoEventStore) SetImageURL(ctx context.Context, id string, url string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{}
	if url != "" {
		update["$set"] = bson.M{"image_url": url}
	} else {
		update["$unset"] = bson.M{"image_url": ""}
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoSessionStore struct {
	col *mongo.Collection
}

func NewMongoSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{col: db.Collection(sessionsCollection)}
}

// EnsureIndexes creates the TTL index that reaps expired sessions.
func (s *MongoSessionStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (s *MongoSessionStore) Put(ctx context.Context, sess models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": sess.ID}, sess, opts)
	return err
}

func (s *MongoSessionStore) Get(ctx context.Context, id string) (models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sess models.Session
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, err
	}
	// The TTL monitor sweeps lazily; treat an expired row as gone.
	if !time.Now().Before(sess.ExpiresAt) {
		return models.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MongoSessionStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Deleting an absent session is fine.
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
