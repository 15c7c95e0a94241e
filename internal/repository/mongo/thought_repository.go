package mongo

import (
	"context"
	"errors"
	"time"

	"thoughts-api/internal/domain"
	"thoughts-api/internal/observability"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	thoughtCollection = "thoughts"
	driverName        = "mongo"
)

// thoughtDocument is the stored shape of a thought
type thoughtDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Message   string             `bson:"message"`
	Hearts    int                `bson:"hearts"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d thoughtDocument) toDomain() *domain.Thought {
	return &domain.Thought{
		ID:        d.ID.Hex(),
		Message:   d.Message,
		Hearts:    d.Hearts,
		CreatedAt: d.CreatedAt,
	}
}

// _id breaks ties between thoughts created in the same millisecond
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// ThoughtRepository implements domain.ThoughtRepository for MongoDB
type ThoughtRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewThoughtRepository creates a new MongoDB thought repository
func NewThoughtRepository(db *mongo.Database) *ThoughtRepository {
	return &ThoughtRepository{
		db:         db,
		collection: db.Collection(thoughtCollection),
	}
}

// EnsureIndexes creates the compound index both listings sort on
func (r *ThoughtRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    newestFirst,
		Options: options.Index().SetName("createdAt_id_desc"),
	})
	if err != nil {
		return wrapError("create thoughts index", err)
	}
	return nil
}

// Create inserts a new thought and assigns its ID
func (r *ThoughtRepository) Create(ctx context.Context, thought *domain.Thought) (err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("create", driverName, start, err)
	}(time.Now())

	doc := thoughtDocument{
		ID:        primitive.NewObjectID(),
		Message:   thought.Message,
		Hearts:    thought.Hearts,
		CreatedAt: thought.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return wrapError("create thought", err)
	}

	thought.ID = doc.ID.Hex()
	return nil
}

// ListRecent returns the newest thoughts using a sorted, limited find
func (r *ThoughtRepository) ListRecent(ctx context.Context, limit int) (thoughts []*domain.Thought, err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("list_recent", driverName, start, err)
	}(time.Now())

	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrapError("list thoughts", err)
	}
	return decodeAll(ctx, cursor)
}

// ListPage returns one page of thoughts using a sort/skip/limit aggregation
func (r *ThoughtRepository) ListPage(ctx context.Context, skip, limit int) (thoughts []*domain.Thought, err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("list_page", driverName, start, err)
	}(time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$skip", Value: int64(skip)}},
		{{Key: "$limit", Value: int64(limit)}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapError("page thoughts", err)
	}
	return decodeAll(ctx, cursor)
}

// IncrementHearts atomically adds one heart and returns the document after the update
func (r *ThoughtRepository) IncrementHearts(ctx context.Context, id string) (thought *domain.Thought, err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("like", driverName, start, err)
	}(time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc thoughtDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"hearts": 1}},
		opts,
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrThoughtNotFound
	}
	if err != nil {
		return nil, wrapError("like thought", err)
	}

	return doc.toDomain(), nil
}

// Ping checks that the primary is reachable
func (r *ThoughtRepository) Ping(ctx context.Context) error {
	if err := r.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return wrapError("ping mongo", err)
	}
	return nil
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Thought, error) {
	defer cursor.Close(ctx)

	docs := make([]thoughtDocument, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapError("decode thoughts", err)
	}

	return lo.Map(docs, func(d thoughtDocument, _ int) *domain.Thought {
		return d.toDomain()
	}), nil
}
