package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Backoffice-api/internal/application/sales"
)

var _ sales.DraftStore = (*DraftStore)(nil)

const draftKeyPrefix = "backoffice:draft:"

// DraftStore guarda las sesiones de edición de ventas como JSON con vencimiento.
// Cada Save renueva el TTL.
type DraftStore struct {
	client *redis.Client
}

// NewDraftStore construye el adaptador.
func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{client: client}
}

func (s *DraftStore) Save(ctx context.Context, d *sales.Draft, ttl time.Duration) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKeyPrefix+d.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Get devuelve (nil, nil) si la sesión no existe o venció.
func (s *DraftStore) Get(ctx context.Context, id string) (*sales.Draft, error) {
	raw, err := s.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	var d sales.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
