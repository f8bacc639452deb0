// The redistore package defines a Redis store that fulfills the ResultStore interface in models.
package redistore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/linkrank/pkg/models"
	"github.com/vertex-lab/linkrank/pkg/utils/sliceutils"
)

const (
	// sorted set of the ranked IDs, scored by their position in the ranking.
	KeyRanking string = "ranking"

	KeyVertexPrefix string = "vertex:"
)

// KeyVertex() returns the Redis key of the hash holding the ranking entry of ID.
func KeyVertex(ID string) string {
	return KeyVertexPrefix + ID
}

// ResultStore fulfills the ResultStore interface defined in models.
type ResultStore struct {
	client *redis.Client
}

// VertexFields are the fields of a ranking entry in Redis. This struct is used for serialize and deserialize.
type VertexFields struct {
	ID       string  `redis:"id"`
	Label    string  `redis:"label"`
	Score    float64 `redis:"score"`
	OutLinks string  `redis:"out_links"`
}

// NewResultStore() returns a ResultStore that uses the specified client.
func NewResultStore(ctx context.Context, cl *redis.Client) (*ResultStore, error) {
	if cl == nil {
		return nil, models.ErrNilClientPointer
	}

	if err := cl.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ResultStore{client: cl}, nil
}

// Validate() checks if the store and client are nil and returns the appropriate error.
func (s *ResultStore) Validate() error {
	if s == nil {
		return models.ErrNilStorePointer
	}

	if s.client == nil {
		return models.ErrNilClientPointer
	}

	return nil
}

// Size() returns the number of ranked vertices (ignores errors).
func (s *ResultStore) Size(ctx context.Context) int {
	if s.Validate() != nil {
		return 0
	}

	size, err := s.client.ZCard(ctx, KeyRanking).Result()
	if err != nil {
		return 0
	}
	return int(size)
}

// Save() replaces the stored ranking with the provided one in a single transaction.
// The entries of vertices that are not in the new ranking are deleted.
func (s *ResultStore) Save(ctx context.Context, ranking []models.Ranked[string]) error {
	if err := s.Validate(); err != nil {
		return err
	}

	oldIDs, err := s.client.ZRange(ctx, KeyRanking, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to fetch the old ranking: %w", err)
	}

	newIDs := make([]string, len(ranking))
	members := make([]redis.Z, len(ranking))
	for i, entry := range ranking {
		newIDs[i] = entry.ID
		members[i] = redis.Z{Score: float64(i), Member: entry.ID}
	}

	removed := sliceutils.Difference(oldIDs, newIDs)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, KeyRanking)
	if len(members) > 0 {
		pipe.ZAdd(ctx, KeyRanking, members...)
	}

	for _, entry := range ranking {
		pipe.HSet(ctx, KeyVertex(entry.ID), formatEntry(entry))
	}

	for _, ID := range removed {
		pipe.Del(ctx, KeyVertex(ID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save the ranking: %w", err)
	}

	return nil
}

// Top() returns the first limit entries of the ranking.
func (s *ResultStore) Top(ctx context.Context, limit int) ([]models.Ranked[string], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		return nil, models.ErrInvalidLimit
	}

	IDs, err := s.client.ZRange(ctx, KeyRanking, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(IDs))
	for i, ID := range IDs {
		cmds[i] = pipe.HGetAll(ctx, KeyVertex(ID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	top := make([]models.Ranked[string], 0, len(IDs))
	for i, cmd := range cmds {
		entry, err := parseEntry(cmd)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %v: %w", IDs[i], err)
		}
		top = append(top, entry)
	}

	return top, nil
}

// Vertex() returns the ranking entry of the specified vertex.
func (s *ResultStore) Vertex(ctx context.Context, ID string) (models.Ranked[string], error) {
	if err := s.Validate(); err != nil {
		return models.Ranked[string]{}, err
	}

	return parseEntry(s.client.HGetAll(ctx, KeyVertex(ID)))
}

// Close() closes the underlying client.
func (s *ResultStore) Close() error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := s.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}

func formatEntry(entry models.Ranked[string]) VertexFields {
	return VertexFields{
		ID:       entry.ID,
		Label:    entry.Label,
		Score:    entry.Score,
		OutLinks: models.FormatLinks(entry.OutLinks),
	}
}

// parseEntry scans the result of HGetAll into a ranking entry.
func parseEntry(cmd *redis.MapStringStringCmd) (models.Ranked[string], error) {
	if err := cmd.Err(); err != nil {
		return models.Ranked[string]{}, err
	}

	// if an empty map is returned, it means the vertex was not found
	if len(cmd.Val()) == 0 {
		return models.Ranked[string]{}, models.ErrVertexNotFound
	}

	var fields VertexFields
	if err := cmd.Scan(&fields); err != nil {
		return models.Ranked[string]{}, err
	}

	return models.Ranked[string]{
		ID:       fields.ID,
		Label:    fields.Label,
		Score:    fields.Score,
		OutLinks: models.ParseLinks(fields.OutLinks),
	}, nil
}
