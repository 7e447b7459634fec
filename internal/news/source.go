package news

import (
	"context"
	"fmt"

	"github.com/pders01/newsview/internal/config"
)

// Source runs one search. An empty query means the source's default result set.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]Article, error)
}

// NewSource builds the source selected by cfg.Source.Kind.
func NewSource(cfg *config.Config) (Source, error) {
	switch cfg.Source.Kind {
	case config.SourceGuardian, "":
		return NewGuardianClient(cfg), nil
	case config.SourceRSS:
		return NewRSSSource(cfg), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source.Kind)
	}
}
