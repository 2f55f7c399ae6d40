package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HassaanMujtaba/auth-service/internal/api/metrics"
	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
)

// Collection names a logical collection. The set is closed; NewStore builds
// its registry from it, so an unknown name can only come from a caller-side
// string and fails resolution.
type Collection string

const CollectionUsers Collection = "users"

var collections = []Collection{CollectionUsers}

// Operation names a store operation from the closed whitelist.
type Operation string

const (
	OpCount      Operation = "count"
	OpCreate     Operation = "create"
	OpFindOne    Operation = "findOne"
	OpFind       Operation = "find"
	OpUpdateOne  Operation = "updateOne"
	OpUpdateMany Operation = "updateMany"
	OpDeleteOne  Operation = "deleteOne"
	OpDeleteMany Operation = "deleteMany"
	OpFindWith   Operation = "findWith"
	OpFindMany   Operation = "findMany"
	OpSearch     Operation = "search"
	OpAggregate  Operation = "aggregate"
)

// Params is the operation-specific data bag. Which fields are required
// depends on the operation; violations fail before any store access.
type Params struct {
	// Query is the filter document for read/update/delete operations, or
	// the search string for OpSearch.
	Query any
	// Object is the document to insert for OpCreate.
	Object any
	// Update is the update document for OpUpdateOne/OpUpdateMany.
	Update any
	// IDs are hex ObjectIDs for OpFindMany.
	IDs []string
	// Pipeline is the ordered stage list for OpAggregate.
	Pipeline []any

	// Optional query modifiers for OpFind/OpFindWith, applied in the fixed
	// order sort, limit, skip, select.
	Sort   any
	Limit  int64
	Skip   int64
	Select any

	// Result, when non-nil, receives decoded documents for read operations
	// instead of the generic bson.M forms.
	Result any
}

// Store dispatches {collection, operation, params} triples against MongoDB.
// It holds no in-process locks; mutation ordering and uniqueness are
// delegated entirely to the server.
type Store struct {
	colls map[Collection]*mongo.Collection
	log   zerolog.Logger
}

// NewStore builds the store's collection registry from the closed collection set.
func NewStore(db *mongo.Database, log zerolog.Logger) *Store {
	colls := make(map[Collection]*mongo.Collection, len(collections))
	for _, c := range collections {
		colls[c] = db.Collection(string(c))
	}
	return &Store{colls: colls, log: log}
}

// Execute resolves the collection, validates params for the operation, runs
// it, and records the execution time. Store-level failures propagate
// unchanged; there is no retry.
func (s *Store) Execute(ctx context.Context, collection Collection, op Operation, params Params) (any, error) {
	coll, ok := s.colls[collection]
	if !ok {
		return nil, domain.E(domain.KindNotFound, fmt.Sprintf("Model for collection '%s' not found", collection))
	}

	if err := validateParams(op, params); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.run(ctx, coll, op, params)
	elapsed := time.Since(start)

	metrics.StoreOperationDuration.
		WithLabelValues(string(collection), string(op)).
		Observe(elapsed.Seconds())

	if err != nil {
		s.log.Error().Err(err).
			Str("collection", string(collection)).
			Str("operation", string(op)).
			Dur("elapsed", elapsed).
			Msg("store operation failed")
		return nil, err
	}

	s.log.Debug().
		Str("collection", string(collection)).
		Str("operation", string(op)).
		Dur("elapsed", elapsed).
		Msg("store operation executed")

	return result, nil
}

// validateParams enforces the per-operation input contract ahead of any
// store access.
func validateParams(op Operation, params Params) error {
	switch op {
	case OpCount:
		// Filter is optional; an absent query counts the whole collection.
		return nil

	case OpCreate:
		if params.Object == nil {
			return domain.E(domain.KindInvalidOperationInput, "Invalid object for create operation")
		}

	case OpUpdateOne, OpUpdateMany:
		if params.Query == nil || params.Update == nil {
			return domain.E(domain.KindInvalidOperationInput,
				fmt.Sprintf("Invalid query or update data for %s operation", op))
		}

	case OpDeleteOne, OpDeleteMany, OpFindOne, OpFind, OpFindWith:
		if params.Query == nil {
			return domain.E(domain.KindInvalidOperationInput,
				fmt.Sprintf("Invalid query for %s operation", op))
		}

	case OpSearch:
		if q, ok := params.Query.(string); !ok || q == "" {
			return domain.E(domain.KindInvalidOperationInput, "Invalid query for search operation")
		}

	case OpFindMany:
		if len(params.IDs) == 0 {
			return domain.E(domain.KindInvalidOperationInput, "Invalid ids for findMany operation")
		}

	case OpAggregate:
		if params.Pipeline == nil {
			return domain.E(domain.KindInvalidOperationInput, "Invalid pipeline for aggregate operation")
		}

	default:
		return domain.E(domain.KindUnsupportedOperation, fmt.Sprintf("Unsupported operation: %s", op))
	}
	return nil
}

func (s *Store) run(ctx context.Context, coll *mongo.Collection, op Operation, params Params) (any, error) {
	switch op {
	case OpCount:
		filter := params.Query
		if filter == nil {
			filter = bson.M{}
		}
		return coll.CountDocuments(ctx, filter)

	case OpCreate:
		return coll.InsertOne(ctx, params.Object)

	case OpFindOne:
		return decodeOne(coll.FindOne(ctx, params.Query), params.Result)

	case OpFind, OpFindWith:
		cursor, err := coll.Find(ctx, params.Query, findOptions(params))
		if err != nil {
			return nil, err
		}
		return decodeAll(ctx, cursor, params.Result)

	case OpUpdateOne:
		return coll.UpdateOne(ctx, params.Query, params.Update)

	case OpUpdateMany:
		return coll.UpdateMany(ctx, params.Query, params.Update)

	case OpDeleteOne:
		return coll.DeleteOne(ctx, params.Query)

	case OpDeleteMany:
		return coll.DeleteMany(ctx, params.Query)

	case OpFindMany:
		ids, err := parseObjectIDs(params.IDs)
		if err != nil {
			return nil, err
		}
		cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		return decodeAll(ctx, cursor, params.Result)

	case OpSearch:
		query := params.Query.(string)
		cursor, err := coll.Find(ctx, bson.M{"$text": bson.M{"$search": query}})
		if err != nil {
			return nil, err
		}
		return decodeAll(ctx, cursor, params.Result)

	case OpAggregate:
		pipeline := make(bson.A, len(params.Pipeline))
		copy(pipeline, params.Pipeline)
		cursor, err := coll.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		return decodeAll(ctx, cursor, params.Result)
	}

	return nil, domain.E(domain.KindUnsupportedOperation, fmt.Sprintf("Unsupported operation: %s", op))
}

// findOptions applies the optional modifiers in the fixed order
// sort → limit → skip → select.
func findOptions(params Params) *options.FindOptions {
	opts := options.Find()
	if params.Sort != nil {
		opts.SetSort(params.Sort)
	}
	if params.Limit > 0 {
		opts.SetLimit(params.Limit)
	}
	if params.Skip > 0 {
		opts.SetSkip(params.Skip)
	}
	if params.Select != nil {
		opts.SetProjection(params.Select)
	}
	return opts
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, domain.Wrap(domain.KindMalformedIdentifier, "Invalid data format", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func decodeOne(res *mongo.SingleResult, dest any) (any, error) {
	if dest != nil {
		if err := res.Decode(dest); err != nil {
			return nil, err
		}
		return dest, nil
	}
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor, dest any) (any, error) {
	if dest != nil {
		if err := cursor.All(ctx, dest); err != nil {
			return nil, err
		}
		return dest, nil
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
