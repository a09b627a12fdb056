package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
)

// Put writes records as hashes in a single pipelined round trip.
func (s *Store) Put(ctx context.Context, records []db.Record) error {
	if len(records) == 0 {
		return nil
	}
	cmds := make(rueidis.Commands, 0, len(records))
	for _, rec := range records {
		b := s.b().Hset().Key(rec.Key).FieldValue()
		for _, field := range sortedKeys(rec.Fields) {
			b = b.FieldValue(field, rec.Fields[field])
		}
		cmds = append(cmds, b.Build())
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Err: err}
		}
	}
	return nil
}

// Get reads one record by key. Missing keys yield db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (db.Record, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	fields, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return db.Record{}, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	if len(fields) == 0 {
		return db.Record{}, db.ErrKeyNotFound
	}
	return db.Record{Key: key, Fields: fields}, nil
}

// SetFields updates a subset of a record's fields.
func (s *Store) SetFields(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	b := s.b().Hset().Key(key).FieldValue()
	for _, field := range sortedKeys(fields) {
		b = b.FieldValue(field, fields[field])
	}
	if err := s.do(ctx, b.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// IncrField atomically increments a numeric record field and returns the
// new value.
func (s *Store) IncrField(ctx context.Context, key, field string, delta int64) (int64, error) {
	cmd := s.b().Hincrby().Key(key).Field(field).Increment(delta).Build()
	v, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpHIncrBy, Err: err}
	}
	return v, nil
}

// Del removes a record.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", db.ErrKeyNotFound, key)
	}
	return nil
}
