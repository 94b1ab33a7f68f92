package storage

import (
	"context"
	"errors"

	"lpOracle/internal/model"
)

// ConfigStore persists the oracle configuration.
type ConfigStore interface {
	LoadConfig(ctx context.Context) (model.Config, bool, error)
	SaveConfig(ctx context.Context, cfg model.Config) error
}

// QuoteSink defines a sink for served quotes.
type QuoteSink interface {
	PutQuotes(ctx context.Context, quotes []model.QuoteRecord) error
}

// MultiSink writes quotes to every sink in order. All sinks are attempted;
// their errors are joined.
type MultiSink []QuoteSink

func (m MultiSink) PutQuotes(ctx context.Context, quotes []model.QuoteRecord) error {
	var errs []error
	for _, sink := range m {
		if err := sink.PutQuotes(ctx, quotes); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
