package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lpOracle/internal/model"
	"lpOracle/internal/storage"
)

type countingSink struct {
	n int
}

func (c *countingSink) PutQuotes(_ context.Context, quotes []model.QuoteRecord) error {
	c.n += len(quotes)
	return nil
}

func TestWithJournalKeepsPrimarySink(t *testing.T) {
	primary := &countingSink{}
	path := filepath.Join(t.TempDir(), "quotes.jsonl")

	sink := withJournal(primary, path)
	if _, ok := sink.(storage.MultiSink); !ok {
		t.Fatalf("expected fan-out sink, got %T", sink)
	}
	if err := sink.PutQuotes(context.Background(), []model.QuoteRecord{{AssetToken: "0xabc", Rate: "1"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if primary.n != 1 {
		t.Fatalf("primary sink skipped: %d", primary.n)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("journal not written: %v", err)
	}
}

func TestWithJournalOptional(t *testing.T) {
	primary := &countingSink{}
	if sink := withJournal(primary, ""); sink != storage.QuoteSink(primary) {
		t.Fatalf("empty path must keep the primary sink")
	}
	if sink := withJournal(nil, ""); sink != nil {
		t.Fatalf("expected nil sink, got %T", sink)
	}
	if _, ok := withJournal(nil, filepath.Join(t.TempDir(), "q.jsonl")).(*storage.JsonlStorage); !ok {
		t.Fatalf("expected jsonl sink")
	}
}
