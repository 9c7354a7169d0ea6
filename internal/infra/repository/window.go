package repository

import (
	"context"
	"fmt"

	"restock-sentinel/internal/domain/purchase"

	"github.com/google/uuid"
)

// WindowStore reads hot-window announcements written into the KV store by
// the external prediction process.
type WindowStore struct {
	kv *KVStore
}

func NewWindowStore(kv *KVStore) *WindowStore {
	return &WindowStore{kv: kv}
}

func hotWindowKey(productID uuid.UUID, retailerSlug string) string {
	return fmt.Sprintf("hotwindow:%s:%s", productID, retailerSlug)
}

func (s *WindowStore) HotWindow(ctx context.Context, productID uuid.UUID, retailerSlug string) (*purchase.HotWindow, error) {
	var window purchase.HotWindow
	found, err := s.kv.GetJSON(ctx, hotWindowKey(productID, retailerSlug), &window)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &window, nil
}
