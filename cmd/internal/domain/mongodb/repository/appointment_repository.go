package repository

import (
	"context"
	"errors"
	"psiagenda/cmd/internal/domain/entity"
	"psiagenda/cmd/internal/domain/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DefaultAppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{coll: db.Collection(mongodb.AppointmentCollection)}
}

// FindByUUID returns nil, nil when no document carries the given uuid.
func (a *DefaultAppointmentRepository) FindByUUID(ctx context.Context, uuid string) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.coll.FindOne(ctx, bson.M{"uuid": uuid}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *DefaultAppointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error) {
	query := bson.M{}
	if filter.Crp != "" {
		query["crp"] = filter.Crp
	}
	if filter.PacientID != nil {
		query["pacientId"] = *filter.PacientID
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := a.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	appts := make([]*entity.Appointment, 0)
	if err = cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (a *DefaultAppointmentRepository) Save(ctx context.Context, appointment *entity.Appointment) error {
	_, err := a.coll.InsertOne(ctx, appointment)
	return err
}

func (a *DefaultAppointmentRepository) UpdateFields(ctx context.Context, uuid string, changes *entity.AppointmentChanges) error {
	_, err := a.coll.UpdateOne(ctx, bson.M{"uuid": uuid}, bson.M{
		"$set": bson.M{
			"date":      changes.Date,
			"startTime": changes.StartTime,
			"endTime":   changes.EndTime,
			"type":      changes.Type,
			"location":  changes.Location,
			"updatedAt": changes.UpdatedAt,
		},
	})
	return err
}

func (a *DefaultAppointmentRepository) DeleteByUUID(ctx context.Context, uuid string) error {
	_, err := a.coll.DeleteOne(ctx, bson.M{"uuid": uuid})
	return err
}
