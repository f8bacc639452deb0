// The storetest package contains the behaviour shared by every ResultStore,
// so that each implementation can be tested against it.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vertex-lab/linkrank/pkg/models"
)

// Ranking() returns a small ranking sorted by score descending.
func Ranking() []models.Ranked[string] {
	return []models.Ranked[string]{
		{ID: "Y", Label: "the y page", Score: 1.425, OutLinks: []string{}},
		{ID: "X", Label: "the x page", Score: 0.575, OutLinks: []string{"Y"}},
		{ID: "Z", Label: "Z", Score: 0.15, OutLinks: []string{"X", "Y", "W"}},
	}
}

// TestResultStore() runs the ResultStore contract against an empty store.
func TestResultStore(t *testing.T, store models.ResultStore) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		if size := store.Size(ctx); size != 0 {
			t.Errorf("Size(): expected 0, got %d", size)
		}

		if _, err := store.Vertex(ctx, "X"); !errors.Is(err, models.ErrVertexNotFound) {
			t.Errorf("Vertex(): expected %v, got %v", models.ErrVertexNotFound, err)
		}
	})

	t.Run("save", func(t *testing.T) {
		ranking := Ranking()
		if err := store.Save(ctx, ranking); err != nil {
			t.Fatalf("Save(): expected nil, got %v", err)
		}

		if size := store.Size(ctx); size != len(ranking) {
			t.Errorf("Size(): expected %d, got %d", len(ranking), size)
		}

		for _, expected := range ranking {
			entry, err := store.Vertex(ctx, expected.ID)
			if err != nil {
				t.Fatalf("Vertex(%v): expected nil, got %v", expected.ID, err)
			}

			if !reflect.DeepEqual(entry, expected) {
				t.Errorf("Vertex(%v): expected %v, got %v", expected.ID, expected, entry)
			}
		}
	})

	t.Run("top", func(t *testing.T) {
		testCases := []struct {
			name          string
			limit         int
			expectedIDs   []string
			expectedError error
		}{
			{name: "invalid limit", limit: 0, expectedIDs: nil, expectedError: models.ErrInvalidLimit},
			{name: "first", limit: 1, expectedIDs: []string{"Y"}, expectedError: nil},
			{name: "all", limit: 3, expectedIDs: []string{"Y", "X", "Z"}, expectedError: nil},
			{name: "more than available", limit: 100, expectedIDs: []string{"Y", "X", "Z"}, expectedError: nil},
		}

		for _, test := range testCases {
			t.Run(test.name, func(t *testing.T) {
				top, err := store.Top(ctx, test.limit)
				if !errors.Is(err, test.expectedError) {
					t.Fatalf("Top(): expected %v, got %v", test.expectedError, err)
				}

				var IDs []string
				for _, entry := range top {
					IDs = append(IDs, entry.ID)
				}

				if !reflect.DeepEqual(IDs, test.expectedIDs) {
					t.Errorf("Top(): expected %v, got %v", test.expectedIDs, IDs)
				}
			})
		}
	})

	t.Run("save replaces", func(t *testing.T) {
		ranking := []models.Ranked[string]{
			{ID: "Z", Label: "Z", Score: 2, OutLinks: []string{"Y"}},
			{ID: "Y", Label: "the y page", Score: 1, OutLinks: []string{}},
		}

		if err := store.Save(ctx, ranking); err != nil {
			t.Fatalf("Save(): expected nil, got %v", err)
		}

		if size := store.Size(ctx); size != 2 {
			t.Errorf("Size(): expected 2, got %d", size)
		}

		if _, err := store.Vertex(ctx, "X"); !errors.Is(err, models.ErrVertexNotFound) {
			t.Errorf("Vertex(): expected %v, got %v", models.ErrVertexNotFound, err)
		}

		top, err := store.Top(ctx, 10)
		if err != nil {
			t.Fatalf("Top(): expected nil, got %v", err)
		}

		if !reflect.DeepEqual(top, ranking) {
			t.Errorf("Top(): expected %v, got %v", ranking, top)
		}
	})
}
