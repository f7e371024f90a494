package agent

// Action is the next step chosen by a Decider. The concrete types below are
// the only implementations.
type Action interface {
	Tool() string
	isAction()
}

// Search queries the web.
type Search struct{ Query string }

// Scrape fetches one page.
type Scrape struct{ URL string }

// Identify ranks candidate profiles. Data is either a JSON array of search
// results or a free-form hint; an empty/hint value means "use everything found so far".
type Identify struct{ Data string }

// Analyze extracts a structured biography. Content is a scraped URL or raw text.
type Analyze struct{ Content string }

// Finish ends the loop.
type Finish struct{ Answer string }

// Tool names as shown to the model.
const (
	ToolSearch   = "Search"
	ToolScrape   = "Scrape"
	ToolIdentify = "IdentifyProfiles"
	ToolAnalyze  = "AnalyzeProfile"
	ToolFinish   = "Final Answer"
)

func (Search) Tool() string   { return ToolSearch }
func (Scrape) Tool() string   { return ToolScrape }
func (Identify) Tool() string { return ToolIdentify }
func (Analyze) Tool() string  { return ToolAnalyze }
func (Finish) Tool() string   { return ToolFinish }

func (Search) isAction()   {}
func (Scrape) isAction()   {}
func (Identify) isAction() {}
func (Analyze) isAction()  {}
func (Finish) isAction()   {}

// Step is one decision: the model's reasoning plus the chosen action.
type Step struct {
	Thought string
	Action  Action
}

// input returns the action argument for transcripts.
func input(a Action) string {
	switch a := a.(type) {
	case Search:
		return a.Query
	case Scrape:
		return a.URL
	case Identify:
		return a.Data
	case Analyze:
		return a.Content
	case Finish:
		return a.Answer
	}
	return ""
}
