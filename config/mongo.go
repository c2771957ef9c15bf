package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var mongoDB *mongo.Database

// InitMongo connects to the forum document store and returns its database
// handle.
func InitMongo() *mongo.Database {
	if mongoDB != nil {
		return mongoDB
	}

	cfg := Get()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect mongodb: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("mongodb ping failed: %v", err)
	}

	mongoDB = client.Database(cfg.MongoDatabase)
	return mongoDB
}
