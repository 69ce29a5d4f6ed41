package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AppointmentCollection = "appointments"

// Init connects to the server behind uri and makes sure the appointment
// collection has its unique uuid index.
func Init(ctx context.Context, uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(database)
	_, err = db.Collection(AppointmentCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "uuid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "crp", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "pacientId", Value: 1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}
