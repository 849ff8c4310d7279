// Package bulk provides the partitioned fan-out primitive used by every
// multi-store operation: bulk status updates, dispatch, return booking and
// AWB assignment all group their input by owning storefront and run one
// concurrent sub-operation per partition.
package bulk

import (
	"context"
	"fmt"
	"sync"
)

// PartitionResult reports the outcome of one partition's sub-operation
type PartitionResult[K comparable] struct {
	Key       K     `json:"key"`
	Succeeded bool  `json:"succeeded"`
	Count     int   `json:"count"`
	Err       error `json:"-"`
}

// ErrorMessage renders the partition error for transport
func (r PartitionResult[K]) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Summary aggregates every partition's result. It is only returned after
// all partitions have settled; callers clear selection state on receipt,
// never earlier, so a fast partition cannot clear state while a slow one is
// still in flight.
type Summary[K comparable] struct {
	Results []PartitionResult[K]
}

// Succeeded returns the results of partitions that completed
func (s Summary[K]) Succeeded() []PartitionResult[K] {
	out := make([]PartitionResult[K], 0, len(s.Results))
	for _, r := range s.Results {
		if r.Succeeded {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the results of partitions that failed
func (s Summary[K]) Failed() []PartitionResult[K] {
	out := make([]PartitionResult[K], 0)
	for _, r := range s.Results {
		if !r.Succeeded {
			out = append(out, r)
		}
	}
	return out
}

// AllSucceeded reports whether every partition completed
func (s Summary[K]) AllSucceeded() bool {
	for _, r := range s.Results {
		if !r.Succeeded {
			return false
		}
	}
	return true
}

// TotalCount sums the processed counts of successful partitions
func (s Summary[K]) TotalCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded {
			n += r.Count
		}
	}
	return n
}

// Partition groups items by key preserving first-seen key order, so fan-out
// results come back in a stable order for the caller to render.
func Partition[T any, K comparable](items []T, key func(T) K) ([]K, map[K][]T) {
	keys := make([]K, 0)
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], item)
	}
	return keys, groups
}

// FanOut partitions items by key and invokes op once per partition
// concurrently. It joins all partitions regardless of individual failure:
// a slow or failing partition never cancels its siblings, and no error or
// panic escapes. A panicking partition is recorded as a failed result.
// Within a partition op receives the items in input order and is expected
// to process them serially.
func FanOut[T any, K comparable](
	ctx context.Context,
	items []T,
	key func(T) K,
	op func(ctx context.Context, key K, items []T) (int, error),
) Summary[K] {
	keys, groups := Partition(items, key)

	results := make([]PartitionResult[K], len(keys))
	var wg sync.WaitGroup
	for i, k := range keys {
		wg.Add(1)
		go func(i int, k K, part []T) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					results[i] = PartitionResult[K]{
						Key: k,
						Err: fmt.Errorf("partition panicked: %v", rec),
					}
				}
			}()

			count, err := op(ctx, k, part)
			if err != nil {
				results[i] = PartitionResult[K]{Key: k, Count: count, Err: err}
				return
			}
			results[i] = PartitionResult[K]{Key: k, Succeeded: true, Count: count}
		}(i, k, groups[k])
	}
	wg.Wait()

	return Summary[K]{Results: results}
}
