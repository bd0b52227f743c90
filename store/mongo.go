package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"poirec-server/logging"
	"poirec-server/models"
)

const (
	poiCollection      = "pois"
	categoryCollection = "categories"
	userCollection     = "users"
	checkinCollection  = "checkins"
)

// Connect opens a MongoDB client and verifies it with a ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	logging.Info().Str("database", "mongodb").Msg("Connected to MongoDB")
	return client, nil
}

// EnsureIndexes creates the unique and lookup indexes every store relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		categoryCollection: {
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		userCollection: {
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		poiCollection: {
			Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
		},
		checkinCollection: {
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}
	for name, model := range indexes {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", name, err)
		}
	}
	return nil
}

func insertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// findOne decodes a single document into out, mapping "no documents" to found=false.
func findOne(ctx context.Context, c *mongo.Collection, filter any, out any) (bool, error) {
	err := c.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type MongoPOIStore struct {
	collection *mongo.Collection
}

func NewMongoPOIStore(db *mongo.Database) *MongoPOIStore {
	return &MongoPOIStore{collection: db.Collection(poiCollection)}
}

// FetchAll enumerates POIs by creation time.
func (s *MongoPOIStore) FetchAll(ctx context.Context) ([]models.POI, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pois []models.POI
	if err := cursor.All(ctx, &pois); err != nil {
		return nil, err
	}
	return pois, nil
}

func (s *MongoPOIStore) FetchByID(ctx context.Context, id string) (models.POI, bool, error) {
	var poi models.POI
	found, err := findOne(ctx, s.collection, bson.M{"_id": id}, &poi)
	return poi, found, err
}

func (s *MongoPOIStore) Insert(ctx context.Context, poi models.POI) error {
	_, err := s.collection.InsertOne(ctx, poi)
	return insertErr(err)
}

func (s *MongoPOIStore) Update(ctx context.Context, poi models.POI) (bool, error) {
	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": poi.ID}, poi)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *MongoPOIStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (s *MongoPOIStore) Titles(ctx context.Context) ([]string, error) {
	values, err := s.collection.Distinct(ctx, "title", bson.D{})
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(values))
	for _, v := range values {
		if t, ok := v.(string); ok {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

type MongoCategoryStore struct {
	collection *mongo.Collection
}

func NewMongoCategoryStore(db *mongo.Database) *MongoCategoryStore {
	return &MongoCategoryStore{collection: db.Collection(categoryCollection)}
}

func (s *MongoCategoryStore) FetchByName(ctx context.Context, name string) (models.Category, bool, error) {
	var c models.Category
	found, err := findOne(ctx, s.collection, bson.M{"name": bson.M{"$eq": name}}, &c)
	return c, found, err
}

func (s *MongoCategoryStore) FetchAll(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MongoCategoryStore) Insert(ctx context.Context, c models.Category) error {
	_, err := s.collection.InsertOne(ctx, c)
	return insertErr(err)
}

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{collection: db.Collection(userCollection)}
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (models.User, bool, error) {
	var u models.User
	found, err := findOne(ctx, s.collection, bson.M{"_id": bson.M{"$eq": id}}, &u)
	return u, found, err
}

func (s *MongoUserStore) FindByUsername(ctx context.Context, username string) (models.User, bool, error) {
	var u models.User
	found, err := findOne(ctx, s.collection, bson.M{"username": bson.M{"$eq": username}}, &u)
	return u, found, err
}

func (s *MongoUserStore) Insert(ctx context.Context, u models.User) error {
	_, err := s.collection.InsertOne(ctx, u)
	return insertErr(err)
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, id, hash string) (bool, error) {
	update := bson.M{"$set": bson.M{"password_hash": hash}}
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

type MongoCheckinStore struct {
	collection *mongo.Collection
}

func NewMongoCheckinStore(db *mongo.Database) *MongoCheckinStore {
	return &MongoCheckinStore{collection: db.Collection(checkinCollection)}
}

func (s *MongoCheckinStore) Insert(ctx context.Context, c models.Checkin) error {
	_, err := s.collection.InsertOne(ctx, c)
	return insertErr(err)
}

func (s *MongoCheckinStore) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (s *MongoCheckinStore) ListByUser(ctx context.Context, userID string) ([]models.Checkin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checkins []models.Checkin
	if err := cursor.All(ctx, &checkins); err != nil {
		return nil, err
	}
	return checkins, nil
}
