package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LandlordDirectory reads landlord contact data maintained by the account
// service from its shared collection.
type LandlordDirectory struct {
	collection *mongo.Collection
}

func NewLandlordDirectory(db *mongo.Database) *LandlordDirectory {
	return &LandlordDirectory{collection: db.Collection("landlords")}
}

func (d *LandlordDirectory) EmailByID(ctx context.Context, landlordID string) (string, error) {
	var doc landlordDocument
	err := d.collection.FindOne(ctx, bson.M{"_id": landlordID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("landlord %s not found", landlordID)
	}
	if err != nil {
		return "", err
	}
	return doc.Email, nil
}
