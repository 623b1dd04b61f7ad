package extract

import (
	"regexp"
	"strconv"
	"strings"

	"fjacquet/ccris-extract/internal/models"
)

// DefaultTermCodes are the repayment term codes that precede the conduct
// history on a banking ledger line.
var DefaultTermCodes = []string{"MTH", "BUL", "REV", "IDF", "IRR"}

// DefaultHistoryWindow is the number of conduct periods kept per line.
const DefaultHistoryWindow = 6

var numericTokenRe = regexp.MustCompile(`^\d+$`)

// TermConfig configures a TermExtractor. Zero values fall back to the
// defaults.
type TermConfig struct {
	TermCodes    []string
	LegalMarkers []string
	Window       int
	Scheme       models.BucketScheme
}

// TermExtractor parses the "term code + conduct history" tail of a banking
// ledger line.
type TermExtractor struct {
	termRe  *regexp.Regexp
	markers MarkerSet
	window  int
	scheme  models.BucketScheme
}

// NewTermExtractor compiles a term extractor from cfg.
func NewTermExtractor(cfg TermConfig) *TermExtractor {
	quoted := quoteCodes(cfg.TermCodes)
	if len(quoted) == 0 {
		quoted = quoteCodes(DefaultTermCodes)
	}

	markers := cfg.LegalMarkers
	if len(markers) == 0 {
		markers = DefaultLegalMarkers
	}
	window := cfg.Window
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = models.FivePlus
	}

	return &TermExtractor{
		termRe:  regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`),
		markers: NewMarkerSet(markers),
		window:  window,
		scheme:  scheme,
	}
}

// Window returns the configured history window.
func (e *TermExtractor) Window() int {
	return e.window
}

// Scheme returns the bucket scheme of the produced histograms.
func (e *TermExtractor) Scheme() models.BucketScheme {
	return e.scheme
}

// Extract returns the term info of line, or nil when no term code occurs.
//
// The first legal marker after the term code anchors the conduct history:
// it is the last run of purely numeric tokens before the marker. Without a
// marker it is the last run of the whole tail. Earlier numeric runs are
// amount fragments. The run is capped at the window, most recent period
// first.
func (e *TermExtractor) Extract(line string) *models.TermInfo {
	m := e.termRe.FindStringSubmatchIndex(line)
	if m == nil {
		return nil
	}
	info := &models.TermInfo{
		TermCode: line[m[2]:m[3]],
		History:  []string{},
		Current:  models.NewHistogram(e.scheme),
		Window:   models.NewHistogram(e.scheme),
	}

	tokens := strings.Fields(line[m[1]:])
	marker := len(tokens)
	for i, tok := range tokens {
		if e.markers.Contains(tok) {
			marker = i
			info.LegalMarker = strings.ToUpper(tok)
			if i+1 < len(tokens) && IsDate(tokens[i+1]) {
				info.StatusDate = tokens[i+1]
			}
			break
		}
	}

	runStart, runEnd := lastNumericRun(tokens[:marker])
	trailing := tokens
	if runStart >= 0 {
		run := tokens[runStart:runEnd]
		if len(run) > e.window {
			run = run[:e.window]
		}
		info.History = append(info.History, run...)
		trailing = tokens[runEnd:]
	} else if marker < len(tokens) {
		trailing = tokens[marker:]
	}
	info.TrailingWords = strings.Join(trailing, " ")

	for i, tok := range info.History {
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if i == 0 {
			info.Current.Add(v)
		}
		info.Window.Add(v)
	}
	return info
}

func quoteCodes(codes []string) []string {
	quoted := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = strings.TrimSpace(code); code != "" {
			quoted = append(quoted, regexp.QuoteMeta(code))
		}
	}
	return quoted
}

// lastNumericRun returns the bounds of the last maximal run of numeric
// tokens, or -1, -1 when there is none.
func lastNumericRun(tokens []string) (int, int) {
	start, end := -1, -1
	i := 0
	for i < len(tokens) {
		if !numericTokenRe.MatchString(tokens[i]) {
			i++
			continue
		}
		j := i
		for j < len(tokens) && numericTokenRe.MatchString(tokens[j]) {
			j++
		}
		start, end = i, j
		i = j
	}
	return start, end
}
