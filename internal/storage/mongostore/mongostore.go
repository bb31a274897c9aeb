// Package mongostore keeps one MongoDB document per todo, ordered by a
// position field.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/imagetodo/internal/database"
	"github.com/xyz-asif/imagetodo/internal/features/todos"
)

const collectionName = "todos"

type document struct {
	todos.Todo `bson:",inline"`
	Position   int `bson:"position"`
}

type Repository struct {
	db         *database.MongoDB
	collection *mongo.Collection
}

func NewRepository(ctx context.Context, db *database.MongoDB) (*Repository, error) {
	collection := db.Database.Collection(collectionName)

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "position", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	return &Repository{db: db, collection: collection}, nil
}

// Ping checks the server is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repository) Load(ctx context.Context) ([]todos.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	list := make([]todos.Todo, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.Todo)
	}
	return list, nil
}

// Save upserts every todo with its position and removes the ones no longer
// present, in one ordered bulk write.
func (r *Repository) Save(ctx context.Context, list []todos.Todo) error {
	ids := make([]int64, 0, len(list))
	models := make([]mongo.WriteModel, 0, len(list)+1)
	for i, t := range list {
		ids = append(ids, t.ID)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": t.ID}).
			SetReplacement(document{Todo: t, Position: i}).
			SetUpsert(true))
	}
	models = append(models, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"id": bson.M{"$nin": ids}}))

	if _, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("bulk write todos: %w", err)
	}
	return nil
}
