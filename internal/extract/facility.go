package extract

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// DefaultFacilityCodes are the facility keywords printed in the banking
// ledger, in priority order.
var DefaultFacilityCodes = []string{
	"OVRDRAFT",
	"CRDTCARD",
	"RVLVCRDT",
	"TRMLOANS",
	"HSLNFNCE",
	"BNKGUARN",
	"INVCFINC",
	"INVDISCT",
}

// Classifier assigns a facility category to a ledger line. When several
// codes occur on one line the code listed first wins.
type Classifier struct {
	codes   []string
	matcher *ahocorasick.Matcher
	// the matcher keeps per-call state and is not safe for concurrent use
	mu sync.Mutex
}

// NewClassifier builds a classifier over codes. Matching is case-insensitive.
func NewClassifier(codes []string) *Classifier {
	c := &Classifier{}
	patterns := make([][]byte, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		c.codes = append(c.codes, code)
		patterns = append(patterns, []byte(code))
	}
	if len(patterns) > 0 {
		c.matcher = ahocorasick.NewMatcher(patterns)
	}
	return c
}

// Codes returns the normalised codes in priority order.
func (c *Classifier) Codes() []string {
	return append([]string(nil), c.codes...)
}

// Classify returns the category of line, or false when no code occurs in it.
func (c *Classifier) Classify(line string) (string, bool) {
	if c.matcher == nil {
		return "", false
	}

	c.mu.Lock()
	hits := c.matcher.Match([]byte(strings.ToUpper(line)))
	c.mu.Unlock()

	best := -1
	for _, idx := range hits {
		if idx >= 0 && idx < len(c.codes) && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return "", false
	}
	return c.codes[best], true
}
