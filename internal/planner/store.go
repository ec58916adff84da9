package planner

import (
	"context"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
)

func (p *Planner) save(ctx context.Context, key string, value any) error {
	if err := p.store.Set(ctx, key, value); err != nil {
		return &model.StorageError{Key: key, Err: err}
	}
	return nil
}

func (p *Planner) saveSettings(ctx context.Context) {
	p.warn(p.save(ctx, storage.KeySettings, p.settings))
}
