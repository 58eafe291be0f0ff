package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/satstack/paywatch/internal/txstatus"

	redis "github.com/redis/go-redis/v9"
)

// statusKeyPrefix is the base prefix for transaction status records.
const statusKeyPrefix = "payment"

// statusIndexKey is the set holding every tracked transaction hash, used to
// enumerate records without scanning the keyspace.
const statusIndexKey = statusKeyPrefix + ":tx:index"

// maxTxRetries bounds the optimistic WATCH loop. Under contention a
// transaction aborts and the read-apply-write cycle is replayed.
const maxTxRetries = 16

// errTxRetriesExhausted is returned when the optimistic loop keeps losing
// races for the same hash.
var errTxRetriesExhausted = errors.New("transaction status update retries exhausted")

// statusRecordKey returns the key under which the record for the given
// transaction hash is stored.
//
// Format: "payment:tx:{hash}"
func statusRecordKey(txHash string) string {
	return fmt.Sprintf("%s:tx:%s", statusKeyPrefix, txHash)
}

// GetTransaction implements txstatus.StatusStorage by loading and decoding
// the JSON record stored for the hash.
func (c *client) GetTransaction(ctx context.Context, txHash string) (txstatus.Record, error) {
	payload, err := c.conn.Get(ctx, statusRecordKey(txHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return txstatus.Record{}, txstatus.ErrTransactionNotFound
		}
		return txstatus.Record{}, err
	}

	var record txstatus.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return txstatus.Record{}, err
	}

	return record, nil
}

// mutateTransaction runs an optimistic read-apply-write cycle on the record
// key. The WATCH guarantees that concurrent webhook deliveries for the same
// hash serialize instead of losing updates. When the key is absent, apply
// receives nil; a nil result from apply aborts the mutation with
// txstatus.ErrTransactionNotFound.
func (c *client) mutateTransaction(ctx context.Context, txHash string, apply func(current *txstatus.Record) *txstatus.Record) (txstatus.Record, error) {
	var (
		key    = statusRecordKey(txHash)
		result txstatus.Record
	)

	transactional := func(tx *redis.Tx) error {
		var current *txstatus.Record

		payload, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			current = new(txstatus.Record)
			if err := json.Unmarshal(payload, current); err != nil {
				return err
			}
		case errors.Is(err, redis.Nil):
			// leave current nil
		default:
			return err
		}

		next := apply(current)
		if next == nil {
			return txstatus.ErrTransactionNotFound
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			pipe.SAdd(ctx, statusIndexKey, txHash)
			return nil
		})
		if err != nil {
			return err
		}

		result = *next
		return nil
	}

	for range maxTxRetries {
		err := c.conn.Watch(ctx, transactional, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return txstatus.Record{}, err
		}

		return result, nil
	}

	return txstatus.Record{}, errTxRetriesExhausted
}

// UpsertTransaction implements txstatus.StatusStorage.
func (c *client) UpsertTransaction(ctx context.Context, txHash string, apply func(current *txstatus.Record) txstatus.Record) (txstatus.Record, error) {
	return c.mutateTransaction(ctx, txHash, func(current *txstatus.Record) *txstatus.Record {
		record := apply(current)
		return &record
	})
}

// UpdateTransaction implements txstatus.StatusStorage. Unknown hashes are
// reported as txstatus.ErrTransactionNotFound and nothing is created.
func (c *client) UpdateTransaction(ctx context.Context, txHash string, apply func(current txstatus.Record) txstatus.Record) (txstatus.Record, error) {
	return c.mutateTransaction(ctx, txHash, func(current *txstatus.Record) *txstatus.Record {
		if current == nil {
			return nil
		}

		record := apply(*current)
		return &record
	})
}

// ListTransactions implements txstatus.StatusStorage by resolving every
// hash in the index set.
func (c *client) ListTransactions(ctx context.Context) ([]txstatus.Record, error) {
	hashes, err := c.conn.SMembers(ctx, statusIndexKey).Result()
	if err != nil {
		return nil, err
	}

	records := make([]txstatus.Record, 0, len(hashes))
	for _, txHash := range hashes {
		record, err := c.GetTransaction(ctx, txHash)
		if err != nil {
			if errors.Is(err, txstatus.ErrTransactionNotFound) {
				continue
			}
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// Compile-time assertion that *client satisfies the txstatus.StatusStorage interface
var _ txstatus.StatusStorage = new(client)
