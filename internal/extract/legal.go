package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultLegalMarkers are the legal/collection action codes printed on
// ledger lines.
var DefaultLegalMarkers = []string{"LOD", "SUE", "WRIT", "SUMMONS", "SETTLED", "WITHDRAWN"}

var conductValueRe = regexp.MustCompile(`^\d{1,2}$`)

// MarkerSet is an immutable set of legal markers.
type MarkerSet map[string]struct{}

// NewMarkerSet builds a set from markers, upper-cased.
func NewMarkerSet(markers []string) MarkerSet {
	set := make(MarkerSet, len(markers))
	for _, m := range markers {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			set[m] = struct{}{}
		}
	}
	return set
}

// Contains reports whether token is a legal marker. Tokens must match a
// marker exactly, ignoring case.
func (s MarkerSet) Contains(token string) bool {
	_, ok := s[strings.ToUpper(token)]
	return ok
}

// Conduct is the month-by-month conduct run of a non-bank ledger line.
type Conduct struct {
	// Values are in line order, which is the order of the month header.
	Values      []int
	// Remarks are the tokens after the legal marker and its status date.
	Remarks     []string
	LegalMarker string
	StatusDate  string
}

// ConductBeforeMarker reads the run of 1-2 digit values that immediately
// precedes the first legal marker in tokens. The token after the marker is
// the status date when it is a date. Without a marker the run is read
// backwards from the end of the line, so a trailing 1-2 digit remark is
// taken as conduct and a longer trailing number yields no values.
func ConductBeforeMarker(tokens []string, markers MarkerSet) Conduct {
	var c Conduct
	anchor := len(tokens)
	rest := len(tokens)
	for i, tok := range tokens {
		if markers.Contains(tok) {
			anchor = i
			c.LegalMarker = strings.ToUpper(tok)
			rest = i + 1
			if i+1 < len(tokens) && IsDate(tokens[i+1]) {
				c.StatusDate = tokens[i+1]
				rest = i + 2
			}
			break
		}
	}

	j := anchor - 1
	for j >= 0 && conductValueRe.MatchString(tokens[j]) {
		j--
	}
	c.Values = make([]int, 0, anchor-j-1)
	for _, tok := range tokens[j+1 : anchor] {
		v, _ := strconv.Atoi(tok)
		c.Values = append(c.Values, v)
	}
	if rest < len(tokens) {
		c.Remarks = append([]string(nil), tokens[rest:]...)
	}
	return c
}
