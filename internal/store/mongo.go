package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/mgo.v2/bson"
)

// ConnectMongo dials url and pings the primary before returning the client.
func ConnectMongo(ctx context.Context, url string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect with mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// postDocument is the BSON shape of a post.
type postDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	Prompt string             `bson:"prompt"`
	Photo  string             `bson:"photo"`
}

func (d postDocument) post() Post {
	return Post{
		ID:     d.ID.Hex(),
		Name:   d.Name,
		Prompt: d.Prompt,
		Photo:  d.Photo,
	}
}

// MongoStore keeps posts in a single Mongo collection.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongo(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) Create(ctx context.Context, p Post) (Post, error) {
	if err := p.Validate(); err != nil {
		return Post{}, err
	}

	doc := postDocument{
		ID:     primitive.NewObjectID(),
		Name:   p.Name,
		Prompt: p.Prompt,
		Photo:  p.Photo,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return Post{}, fmt.Errorf("insert post: %w", err)
	}
	return doc.post(), nil
}

func (s *MongoStore) List(ctx context.Context) ([]Post, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.post())
	}
	return posts, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.collection.Database().Client().Disconnect(ctx)
}
