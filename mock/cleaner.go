package mock

import (
	"context"

	"github.com/fwojciec/recordscout"
)

var (
	_ recordscout.Cleaner        = (*Cleaner)(nil)
	_ recordscout.Extractor      = (*Extractor)(nil)
	_ recordscout.Converter      = (*Converter)(nil)
	_ recordscout.ParsingService = (*ParsingService)(nil)
)

// Cleaner is a mock implementation of recordscout.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}

// Extractor is a mock implementation of recordscout.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*recordscout.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*recordscout.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of recordscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// ParsingService is a mock implementation of recordscout.ParsingService.
type ParsingService struct {
	ExtractReadableFn func(ctx context.Context, req *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error)
}

func (s *ParsingService) ExtractReadable(ctx context.Context, req *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error) {
	return s.ExtractReadableFn(ctx, req)
}
