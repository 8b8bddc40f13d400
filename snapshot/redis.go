package snapshot

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	ddotel "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/opentelemetry"
	ddtracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// Options is aliased so callers do not need to import go-redis directly.
type Options = redis.Options

// Store persists serialized states in redis, one key per namespace.
type Store struct {
	client redis.Cmdable
	tracer trace.Tracer
}

// NewStore wraps an existing redis client.
func NewStore(client redis.Cmdable) *Store {
	return &Store{
		client: client,
		tracer: otel.Tracer("redis"),
	}
}

// NewRedisStore connects to the redis server at the given address and returns
// a store backed by it.
func NewRedisStore(addr string, password string) *Store {
	client := redis.NewClient(&Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return NewStore(client)
}

// Save stores a serialized state under the given namespace, replacing any
// state previously saved for it.
func (s *Store) Save(ctx context.Context, namespace string, bz []byte) error {
	ctx, span := s.tracer.Start(ddotel.ContextWithStartOptions(ctx, ddtracer.Measured()), "snapshot.save")
	defer span.End()

	if err := s.client.Set(ctx, snapshotKey(namespace), bz, 0).Err(); err != nil {
		err = eris.Wrap(err, "")
		span.SetStatus(codes.Error, eris.ToString(err, true))
		span.RecordError(err)
		return err
	}
	return nil
}

// Load returns the state saved under the given namespace. ErrNoSavedState is
// returned when the namespace has nothing saved.
func (s *Store) Load(ctx context.Context, namespace string) ([]byte, error) {
	ctx, span := s.tracer.Start(ddotel.ContextWithStartOptions(ctx, ddtracer.Measured()), "snapshot.load")
	defer span.End()

	bz, err := s.client.Get(ctx, snapshotKey(namespace)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrap(ErrNoSavedState, namespace)
	} else if err != nil {
		err = eris.Wrap(err, "")
		span.SetStatus(codes.Error, eris.ToString(err, true))
		span.RecordError(err)
		return nil, err
	}
	return bz, nil
}

// Delete removes the state saved under the given namespace. Deleting a
// namespace with nothing saved is a no-op.
func (s *Store) Delete(ctx context.Context, namespace string) error {
	return eris.Wrap(s.client.Del(ctx, snapshotKey(namespace)).Err(), "")
}

// Namespaces returns the namespaces that currently have a saved state.
func (s *Store) Namespaces(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, snapshotKeyPrefix+"*").Result()
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	namespaces := make([]string, 0, len(keys))
	for _, key := range keys {
		namespaces = append(namespaces, strings.TrimPrefix(key, snapshotKeyPrefix))
	}
	return namespaces, nil
}

// Close closes the underlying redis connection.
func (s *Store) Close() error {
	client, ok := s.client.(*redis.Client)
	if !ok {
		return nil
	}
	return eris.Wrap(client.Close(), "")
}
