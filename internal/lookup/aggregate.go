package lookup

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/heartmarshall/quickdef/internal/domain"
)

// aggregate merges per-source outcomes into one LookupResult.
//
// Degradation rules: a failed source contributes nothing but keeps its
// error for diagnostics; the result error is set only when every source
// failed. Empty outcomes (including explicit NotFound answers) count as
// reached, so an all-empty lookup is "no matches found", not a failure.
// Section order follows the outcomes slice, which dispatch builds in
// routing-table order.
func aggregate(q domain.Query, ct domain.ContentType, outcomes []Outcome) domain.LookupResult {
	result := domain.LookupResult{
		Query:       q.String(),
		ContentType: ct,
	}

	failures := 0
	var merr *multierror.Error

	for _, o := range outcomes {
		switch o.Status {
		case StatusFailure:
			failures++
			merr = multierror.Append(merr, o.Err)
		case StatusSuccess:
			frag := o.Fragment
			switch {
			case frag.Definitions != nil && len(frag.Definitions.Definitions) > 0:
				result.Definitions = append(result.Definitions, *frag.Definitions)
			case frag.Thesaurus != nil && result.Thesaurus == nil:
				result.Thesaurus = frag.Thesaurus
			case frag.Summary != nil && result.Summary == nil:
				result.Summary = frag.Summary
			}
		}
	}

	if len(outcomes) > 0 && failures == len(outcomes) {
		result.Err = fmt.Errorf("all sources failed for %q: %w", q.String(), merr)
	}

	return result
}
