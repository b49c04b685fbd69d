package database

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names used by the Mongo backend.
const (
	CollectionUsers     = "users"
	CollectionPatients  = "patients"
	CollectionHospitals = "hospitals"
	CollectionResources = "resources"
	CollectionAuditLogs = "audit_logs"
)

func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes the Mongo repositories rely on, including
// the unique email index that backs duplicate signup detection.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	specs := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		},
		CollectionPatients: {
			{Keys: bson.D{{Key: "assigned_severity", Value: 1}, {Key: "time_of_arrival", Value: -1}}},
			{Keys: bson.D{{Key: "registered_by", Value: 1}, {Key: "time_of_arrival", Value: -1}}},
		},
		CollectionHospitals: {
			{Keys: bson.D{{Key: "last_updated", Value: -1}}},
		},
		CollectionResources: {
			{Keys: bson.D{{Key: "last_updated", Value: -1}}},
		},
		CollectionAuditLogs: {
			{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		},
	}

	for coll, models := range specs {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("creating indexes on %s: %w", coll, err)
		}
		log.Debug("mongo indexes ensured", zap.String("collection", coll), zap.Strings("indexes", names))
	}
	return nil
}
