package mongodb

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PatientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{coll: db.Collection(database.CollectionPatients)}
}

func (r *PatientRepository) Create(ctx context.Context, rec *patient.IntakeRecord) error {
	stampCreated(&rec.CreatedAt)
	_, err := r.coll.InsertOne(ctx, patientDocument{ID: rec.ID.String(), IntakeRecord: *rec})
	return err
}

func (r *PatientRepository) List(ctx context.Context, q patient.ListQuery) ([]*patient.IntakeRecord, error) {
	filter := bson.M{}
	if q.Severity != nil {
		filter["assigned_severity"] = string(*q.Severity)
	}
	if q.RegisteredBy != nil {
		filter["registered_by"] = string(*q.RegisteredBy)
	}

	opts := options.Find().SetSort(bson.D{{Key: "time_of_arrival", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("finding patients: %w", err)
	}

	var docs []patientDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding patients: %w", err)
	}

	records := make([]*patient.IntakeRecord, 0, len(docs))
	for i := range docs {
		rec, err := docs[i].record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *PatientRepository) CountBySeverity(ctx context.Context) (map[patient.Severity]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$assigned_severity"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating severities: %w", err)
	}

	var rows []struct {
		Severity string `bson:"_id"`
		Total    int64  `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding severity counts: %w", err)
	}

	counts := make(map[patient.Severity]int64, len(rows))
	for _, row := range rows {
		counts[patient.Severity(row.Severity)] = row.Total
	}
	return counts, nil
}
