package store

import (
	"context"
	stdErrors "errors"

	nats "github.com/nats-io/nats.go"

	exerrors "github.com/mirkobrombin/go-exclusive/v1/errors"
)

// NATSStore implements Store using a NATS JetStream key-value bucket.
// JetStream has no unconditional read-and-replace, so GetSet is built from
// the bucket's compare-and-swap Update, retried until it lands.
type NATSStore struct {
	kv nats.KeyValue
}

// NewNATSStore binds (or creates) the named bucket and returns a NATSStore.
func NewNATSStore(js nats.JetStreamContext, bucket string) (*NATSStore, error) {
	kv, err := js.KeyValue(bucket)
	if stdErrors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket})
	}
	if err != nil {
		return nil, mapNATSErr(err)
	}
	return &NATSStore{kv: kv}, nil
}

func mapNATSErr(err error) error {
	if stdErrors.Is(err, context.DeadlineExceeded) || stdErrors.Is(err, nats.ErrTimeout) {
		return exerrors.ErrTimeout
	}
	if stdErrors.Is(err, nats.ErrConnectionClosed) {
		return exerrors.ErrConnectionClosed
	}
	return err
}

func isWrongLastSequence(err error) bool {
	var apiErr *nats.APIError
	return stdErrors.As(err, &apiErr) && apiErr.ErrorCode == nats.JSErrCodeStreamWrongLastSequence
}

// SetIfAbsent implements Store.SetIfAbsent using the bucket's Create.
func (s *NATSStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, mapNATSErr(err)
	}
	_, err := s.kv.Create(key, value)
	if stdErrors.Is(err, nats.ErrKeyExists) {
		return false, nil
	}
	if err != nil {
		return false, mapNATSErr(err)
	}
	return true, nil
}

// Get implements Store.Get.
func (s *NATSStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, mapNATSErr(err)
	}
	entry, err := s.kv.Get(key)
	if stdErrors.Is(err, nats.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapNATSErr(err)
	}
	return entry.Value(), true, nil
}

// GetSet implements Store.GetSet as a CAS loop over Get/Update.
func (s *NATSStore) GetSet(ctx context.Context, key string, value []byte) ([]byte, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, mapNATSErr(err)
		}
		entry, err := s.kv.Get(key)
		if stdErrors.Is(err, nats.ErrKeyNotFound) {
			_, err = s.kv.Create(key, value)
			if stdErrors.Is(err, nats.ErrKeyExists) {
				continue
			}
			if err != nil {
				return nil, false, mapNATSErr(err)
			}
			return nil, false, nil
		}
		if err != nil {
			return nil, false, mapNATSErr(err)
		}
		_, err = s.kv.Update(key, value, entry.Revision())
		if isWrongLastSequence(err) {
			continue
		}
		if err != nil {
			return nil, false, mapNATSErr(err)
		}
		return entry.Value(), true, nil
	}
}

// Delete implements Store.Delete using Purge so no tombstone survives.
func (s *NATSStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return mapNATSErr(err)
	}
	if err := s.kv.Purge(key); err != nil && !stdErrors.Is(err, nats.ErrKeyNotFound) {
		return mapNATSErr(err)
	}
	return nil
}

// Exists implements Store.Exists.
func (s *NATSStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, mapNATSErr(err)
	}
	_, err := s.kv.Get(key)
	if stdErrors.Is(err, nats.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, mapNATSErr(err)
	}
	return true, nil
}
