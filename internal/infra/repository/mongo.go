package repository

import (
	"context"
	"techbot/internal/domain/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoConversationRepository struct {
	mongo *mongo.Database
}

func NewMongoConversationRepository(mongo *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{mongo: mongo}
}

func (r *MongoConversationRepository) FindByUserID(ctx context.Context, collectionName string, userID string) (entities.BotChat, error) {
	var chat entities.BotChat
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"user_id": userID}
	err := collection.FindOne(ctx, filter).Decode(&chat)
	return chat, err
}

func (r *MongoConversationRepository) Save(ctx context.Context, collectionName string, chat entities.BotChat) (entities.BotChat, error) {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"user_id": chat.UserID}

	// Upsert so the conversation is created lazily on the first exchange.
	update := bson.M{
		"$set": chat,
	}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return chat, err
}
