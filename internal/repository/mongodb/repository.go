package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// ErrInvalidID indicates a product id that is not a valid ObjectID hex string.
// It is returned before any store round-trip happens.
var ErrInvalidID = errors.New("invalid product id")

// ErrNotFound indicates a lookup by id that matched no document.
var ErrNotFound = errors.New("product not found")

// Repository defines the document store operations the services depend on.
type Repository interface {
	Find(ctx context.Context, search string, limit int64) ([]models.RawProduct, error)
	FindByID(ctx context.Context, id string) (models.RawProduct, error)
	InsertOne(ctx context.Context, product models.Product) (string, error)
	InsertMany(ctx context.Context, products []models.Product) ([]string, error)
	UpdateField(ctx context.Context, id, field string, value any) (matched, modified int64, err error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository. A failed connect or
// ping is the store-unreachable case and is surfaced to the caller untouched.
func NewMongoDBRepository(ctx context.Context, uri, dbName, collName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: collName,
	}, nil
}

// Find returns up to limit documents matching the free-text search. An empty
// search returns the collection unfiltered; otherwise the search is matched
// case-insensitively as a substring of name, sku or category. Documents come
// back in store order with _id stringified under "id".
func (r *MongoDBRepository) Find(ctx context.Context, search string, limit int64) ([]models.RawProduct, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection().Find(ctx, searchFilter(search), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read product cursor: %w", err)
	}

	raws := make([]models.RawProduct, 0, len(docs))
	for _, doc := range docs {
		raws = append(raws, stringifyID(doc))
	}
	return raws, nil
}

// FindByID loads one document by its hex ObjectID.
func (r *MongoDBRepository) FindByID(ctx context.Context, id string) (models.RawProduct, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}

	return stringifyID(doc), nil
}

// InsertOne persists a single product and returns the assigned id.
func (r *MongoDBRepository) InsertOne(ctx context.Context, product models.Product) (string, error) {
	res, err := r.collection().InsertOne(ctx, product)
	if err != nil {
		return "", fmt.Errorf("failed to insert product: %w", err)
	}
	return insertedID(res.InsertedID), nil
}

// InsertMany persists a batch of products and returns the assigned ids.
func (r *MongoDBRepository) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	if len(products) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}

	res, err := r.collection().InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert products: %w", err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		ids = append(ids, insertedID(raw))
	}
	return ids, nil
}

// UpdateField applies a single-field $set to the document with the given id.
// An id that matches nothing yields (0, 0, nil).
func (r *MongoDBRepository) UpdateField(ctx context.Context, id, field string, value any) (int64, int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, 0, err
	}

	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteByID removes the document with the given id and reports how many
// documents were deleted (zero when nothing matched).
func (r *MongoDBRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

// Count reports the total number of documents in the collection.
func (r *MongoDBRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// searchFilter builds the case-insensitive substring query over the three
// searchable fields. The user input is regex-escaped so it always behaves as
// a literal substring.
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"sku": pattern},
		bson.M{"category": pattern},
	}}
}

// stringifyID replaces the native _id with its hex form under "id" so the
// rest of the application never touches driver types.
func stringifyID(doc bson.M) models.RawProduct {
	raw := models.RawProduct(doc)
	if rawID, ok := raw["_id"]; ok {
		raw["id"] = insertedID(rawID)
		delete(raw, "_id")
	}
	return raw
}

func insertedID(raw any) string {
	if oid, ok := raw.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(raw)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
