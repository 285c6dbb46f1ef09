package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	saveTimeout  = 2 * time.Second
	queryTimeout = 2 * time.Second

	maxRecordsPerOwner = 100
)

// MazeRepo stores finished mazes, one document per maze with its cells inlined.
type MazeRepo struct {
	collection *mongo.Collection
}

var _ i.MazeRepo = &MazeRepo{}

// NewMazeRepo creates a MazeRepo over the given database and collection.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	return &MazeRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts the record. Records are immutable once written.
func (r *MazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("saving maze %s: %w", record.ID, err)
	}
	return nil
}

// ByID retrieves a finished maze.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var record dmn.MazeRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrMazeNotFound
		}
		return nil, fmt.Errorf("finding maze %s: %w", id, err)
	}
	return &record, nil
}

// ByOwner lists the most recent finished mazes of one user, newest first.
func (r *MazeRepo) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(maxRecordsPerOwner).
		SetProjection(bson.M{"cells": 0})

	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing mazes: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*dmn.MazeRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding mazes: %w", err)
	}
	return records, nil
}
