package mongodb

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})

type HospitalRepository struct {
	coll *mongo.Collection
}

func NewHospitalRepository(db *mongo.Database) *HospitalRepository {
	return &HospitalRepository{coll: db.Collection(database.CollectionHospitals)}
}

func (r *HospitalRepository) Create(ctx context.Context, h *hospital.Hospital) error {
	stampCreated(&h.CreatedAt)
	_, err := r.coll.InsertOne(ctx, hospitalDocument{ID: h.ID.String(), Hospital: *h})
	return err
}

func (r *HospitalRepository) List(ctx context.Context) ([]*hospital.Hospital, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("finding hospitals: %w", err)
	}

	var docs []hospitalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding hospitals: %w", err)
	}

	hospitals := make([]*hospital.Hospital, 0, len(docs))
	for i := range docs {
		h, err := docs[i].hospital()
		if err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}

type ResourceRepository struct {
	coll *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{coll: db.Collection(database.CollectionResources)}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	stampCreated(&res.CreatedAt)
	_, err := r.coll.InsertOne(ctx, resourceDocument{ID: res.ID.String(), Resource: *res})
	return err
}

func (r *ResourceRepository) List(ctx context.Context) ([]*resource.Resource, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("finding resources: %w", err)
	}

	var docs []resourceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding resources: %w", err)
	}

	resources := make([]*resource.Resource, 0, len(docs))
	for i := range docs {
		res, err := docs[i].resource()
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, nil
}

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(database.CollectionAuditLogs)}
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	stampCreated(&entry.OccurredAt)
	_, err := r.coll.InsertOne(ctx, auditDocument{ID: entry.ID.String(), AuditLog: *entry})
	return err
}
