package repository

import (
	"context"
	"techbot/internal/domain/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// vectorSearchIndex is the Atlas Search index built over the docs
// collection's embedding field.
const vectorSearchIndex = "vector_index"

type MongoDocRepository struct {
	mongo *mongo.Database
}

func NewMongoDocRepository(mongo *mongo.Database) *MongoDocRepository {
	return &MongoDocRepository{mongo: mongo}
}

func (r *MongoDocRepository) Insert(ctx context.Context, collectionName string, doc entities.Doc) (entities.Doc, error) {
	collection := r.mongo.Collection(collectionName)
	_, err := collection.InsertOne(ctx, doc)
	return doc, err
}

// VectorSearch runs an Atlas $vectorSearch aggregate and returns results
// ranked by similarity score descending.
func (r *MongoDocRepository) VectorSearch(ctx context.Context, collectionName string, vector []float64, limit int, numCandidates int) ([]entities.RetrievalResult, error) {
	collection := r.mongo.Collection(collectionName)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.M{
			"index":         vectorSearchIndex,
			"path":          "embedding",
			"queryVector":   vector,
			"numCandidates": numCandidates,
			"limit":         limit,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":     0,
			"content": 1,
			"score":   bson.M{"$meta": "vectorSearchScore"},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []entities.RetrievalResult
	for cursor.Next(ctx) {
		var result entities.RetrievalResult
		if err := cursor.Decode(&result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, cursor.Err()
}
