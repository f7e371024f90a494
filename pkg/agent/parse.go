package agent

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidFormat marks model output that is not a valid step.
	ErrInvalidFormat = errors.New("invalid agent output format")
	ErrUnknownTool   = errors.New("unknown tool")
)

// FormatError carries the unparseable output so it can be echoed back to the model.
type FormatError struct {
	Output string
	Reason string
	Err    error
}

func (e *FormatError) Error() string { return "invalid agent output format: " + e.Reason }

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidFormat}
	}
	return []error{ErrInvalidFormat, e.Err}
}

var (
	reAction  = regexp.MustCompile(`(?is)Action\s*\d*\s*:[\s]*(.*?)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
	reFinal   = regexp.MustCompile(`(?is)Final\s+Answer\s*:[\s]*(.*)`)
	reThought = regexp.MustCompile(`(?is)^\s*(?:Thought\s*:)?\s*(.*?)\s*(?:Action\s*\d*\s*:|Final\s+Answer\s*:)`)
	// the model sometimes keeps writing its own observations
	inputStops = []string{"\nObservation", "\nThought:", "\nFinal Answer:", "\nAction:"}
)

var toolAliases = map[string]string{
	"search":            ToolSearch,
	"googlesearch":      ToolSearch,
	"websearch":         ToolSearch,
	"scrape":            ToolScrape,
	"scraper":           ToolScrape,
	"webscraper":        ToolScrape,
	"scrapeurl":         ToolScrape,
	"identify":          ToolIdentify,
	"identifyprofiles":  ToolIdentify,
	"profileidentifier": ToolIdentify,
	"analyze":           ToolAnalyze,
	"analyse":           ToolAnalyze,
	"analyzeprofile":    ToolAnalyze,
	"analyseprofile":    ToolAnalyze,
	"profileanalyzer":   ToolAnalyze,
}

// ParseStep converts free-form model output into a Step. It is the only place
// where untyped text becomes an Action. Whichever of "Action:" or "Final Answer:"
// appears first wins.
func ParseStep(text string) (Step, error) {
	am := reAction.FindStringSubmatchIndex(text)
	fm := reFinal.FindStringSubmatchIndex(text)

	var thought string
	if m := reThought.FindStringSubmatch(text); m != nil {
		thought = strings.TrimSpace(m[1])
	}

	if fm != nil && (am == nil || fm[0] < am[0]) {
		answer := strings.TrimSpace(text[fm[2]:fm[3]])
		return Step{Thought: thought, Action: Finish{Answer: answer}}, nil
	}
	if am == nil {
		return Step{}, &FormatError{Output: text, Reason: "missing 'Action:' after 'Thought:'"}
	}

	tool := strings.TrimSpace(text[am[2]:am[3]])
	arg := cleanInput(text[am[4]:am[5]])
	action, err := newAction(tool, arg)
	if err != nil {
		return Step{}, &FormatError{Output: text, Reason: err.Error(), Err: err}
	}
	return Step{Thought: thought, Action: action}, nil
}

func newAction(tool, arg string) (Action, error) {
	canonical, ok := toolAliases[normalizeTool(tool)]
	if !ok {
		return nil, fmt.Errorf("%w %q, try one of [%s, %s, %s, %s]",
			ErrUnknownTool, tool, ToolSearch, ToolScrape, ToolIdentify, ToolAnalyze)
	}
	switch canonical {
	case ToolSearch:
		if arg == "" {
			return nil, errors.New("search needs a query as Action Input")
		}
		return Search{Query: arg}, nil
	case ToolScrape:
		if arg == "" {
			return nil, errors.New("scrape needs a URL as Action Input")
		}
		return Scrape{URL: arg}, nil
	case ToolIdentify:
		return Identify{Data: arg}, nil
	default:
		return Analyze{Content: arg}, nil
	}
}

// normalizeTool keeps letters only: "[Google Search]" -> "googlesearch".
func normalizeTool(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func cleanInput(s string) string {
	for _, stop := range inputStops {
		if i := strings.Index(s, stop); i >= 0 {
			s = s[:i]
		}
	}
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'`")
}
