package lookup

import (
	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

// Routes maps a content type to the ordered set of adapters consulted
// for it. Slice order is both launch priority and aggregation order, so
// output section ordering never depends on completion order.
type Routes map[domain.ContentType][]string

// DefaultRoutes returns the standard routing table: words lead with the
// definition family, entities with the encyclopedic source, and mixed or
// ambiguous queries consult everything.
func DefaultRoutes() Routes {
	return Routes{
		domain.ContentTypeWord:   {provider.SourceFreeDict, provider.SourceDatamuse, provider.SourceWikipedia},
		domain.ContentTypeEntity: {provider.SourceWikipedia, provider.SourceFreeDict},
		domain.ContentTypeMixed:  {provider.SourceFreeDict, provider.SourceDatamuse, provider.SourceWikipedia},
	}
}

// routed returns the adapter names for a content type, falling back to
// the Mixed row for any tag without an explicit route.
func (r Routes) routed(ct domain.ContentType) []string {
	if names, ok := r[ct]; ok {
		return names
	}
	return r[domain.ContentTypeMixed]
}
