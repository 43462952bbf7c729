package copygen

import (
	"context"
	"fmt"
	"strings"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/mailing"
)

// StaticSummary is returned, without any provider call, when a request
// carries no features to write about.
const StaticSummary = "Thank you for your interest!"

// Request carries everything the generator may draw on for copy.
type Request struct {
	Lead     *domain.Lead
	Brand    *domain.Brand
	Campaign *domain.Campaign // optional
	Features []domain.ResolvedFeature
	Tone     string
}

// Generator produces the copy summary for a confirmation email.
type Generator interface {
	Generate(ctx context.Context, req Request) (*mailing.CopyResult, error)
}

// fallbackCopy builds the local summary used when no provider is available.
// It is deterministic for a given request.
func fallbackCopy(req Request) *mailing.CopyResult {
	names := make([]string, 0, len(req.Features))
	for _, f := range req.Features {
		names = append(names, f.Name)
	}

	summary := fmt.Sprintf("Hi %s, thank you for your interest in %s. We look forward to showing you %s.",
		req.Lead.Salutation(), req.Brand.Name, joinNames(names))

	return &mailing.CopyResult{
		Summary:   summary,
		ModelUsed: "fallback",
	}
}

// joinNames renders a feature name list as prose: "A", "A and B",
// "A, B and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "what we can do"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
