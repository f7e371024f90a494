package profile

// Candidate: вероятный профиль человека, найденный по результатам поиска.
type Candidate struct {
	URL            string  `json:"url"`
	Platform       string  `json:"platform"`
	Title          string  `json:"title"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Record: структурированная биография, извлечённая из ответа LLM.
// Скалярные поля nil, если раздел не найден; списки всегда не nil.
type Record struct {
	Name       *string      `json:"name"`
	Title      *string      `json:"title"`
	Bio        *string      `json:"bio"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
	Interests  []string     `json:"interests"`
	Posts      []Post       `json:"posts"`
	// RawText хранит исходный ответ целиком.
	RawText string `json:"raw_text"`
	Error   string `json:"error,omitempty"`
}

type Experience struct {
	Description string  `json:"description"`
	Company     *string `json:"company"`
	DateRange   *string `json:"date_range"`
}

type Education struct {
	Description string  `json:"description"`
	Institution *string `json:"institution"`
	Degree      *string `json:"degree"`
	DateRange   *string `json:"date_range"`
}

type Post struct {
	Content string `json:"content"`
}

// NewRecord returns an empty record with all lists initialised.
func NewRecord(raw string) Record {
	return Record{
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []string{},
		Interests:  []string{},
		Posts:      []Post{},
		RawText:    raw,
	}
}

// Empty reports whether nothing beyond the raw text was extracted.
func (r Record) Empty() bool {
	return r.Name == nil && r.Title == nil && r.Bio == nil &&
		len(r.Experience) == 0 && len(r.Education) == 0 &&
		len(r.Skills) == 0 && len(r.Interests) == 0 && len(r.Posts) == 0
}
