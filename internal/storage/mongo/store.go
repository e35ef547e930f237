package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotel_booking/internal/domain"
)

// Store is the document-store collaborator backed by MongoDB. Identifiers are
// UUID strings stored in _id.
type Store struct{ db *mongo.Database }

func NewStore(db *mongo.Database) *Store { return &Store{db: db} }

// EnsureIndexes creates the equality-lookup indexes the services query on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		domain.CollectionBookings: {{Keys: bson.D{{Key: "userId", Value: 1}}}},
		domain.CollectionReviews: {
			{Keys: bson.D{{Key: "hotelId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "hotelId", Value: 1}}},
		},
		domain.CollectionUsers: {{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
	}
	for col, models := range specs {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return domain.Persistence("create indexes on "+col, err)
		}
	}
	return nil
}

func (s *Store) Create(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", domain.Persistence("encode "+collection, err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", domain.Persistence("encode "+collection, err)
	}
	id := uuid.NewString()
	m["_id"] = id
	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) && collection == domain.CollectionUsers {
			return "", domain.ErrEmailTaken
		}
		return "", domain.Persistence("insert into "+collection, err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string, dst any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return domain.Persistence("find in "+collection, err)
}

func (s *Store) Query(ctx context.Context, collection string, filters []domain.Filter, dst any) error {
	f := bson.D{}
	for _, flt := range filters {
		f = append(f, bson.E{Key: flt.Field, Value: flt.Value})
	}
	cur, err := s.db.Collection(collection).Find(ctx, f)
	if err != nil {
		return domain.Persistence("query "+collection, err)
	}
	return domain.Persistence("decode "+collection, cur.All(ctx, dst))
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := s.db.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return domain.Persistence("update "+collection, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
