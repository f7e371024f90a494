package profile

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisSkills(t *testing.T) {
	rec := ParseAnalysis("# Skills\nPython, Machine Learning, AI")
	assert.Equal(t, []string{"Python", "Machine Learning", "AI"}, rec.Skills)
	assert.Nil(t, rec.Name)
	assert.Empty(t, rec.Experience)
	assert.NotNil(t, rec.Experience)
}

const analysisResponse = `Here is what I found.

# Name
Jane Smith

# Title
Staff Engineer at Acme

# Bio
Builds distributed databases and climbs on weekends.

# Experience
- Staff Engineer at Acme, 2019-Present
- Software Engineer at Initech (2014 - 2019)
- Freelance consulting

***
Education
- BSc in Computer Science, Stanford University, 2010-2014
- Master of Science, Massachusetts Institute of Technology, 2016

# Skills
- Go
- Rust, SQL

# Hobbies
Bouldering, chess

---
Recent Posts
1. Why we rewrote our storage engine
2. Notes from GopherCon

# Favourite colours
Blue`

func TestParseAnalysisFull(t *testing.T) {
	rec := ParseAnalysis(analysisResponse)

	require.NotNil(t, rec.Name)
	assert.Equal(t, "Jane Smith", *rec.Name)
	require.NotNil(t, rec.Title)
	assert.Equal(t, "Staff Engineer at Acme", *rec.Title)
	require.NotNil(t, rec.Bio)
	assert.Equal(t, "Builds distributed databases and climbs on weekends.", *rec.Bio)

	require.Len(t, rec.Experience, 3)
	assert.Equal(t, "Staff Engineer at Acme, 2019-Present", rec.Experience[0].Description)
	assert.Equal(t, "Acme", *rec.Experience[0].Company)
	assert.Equal(t, "2019-Present", *rec.Experience[0].DateRange)
	assert.Equal(t, "Initech", *rec.Experience[1].Company)
	assert.Equal(t, "2014 - 2019", *rec.Experience[1].DateRange)
	assert.Nil(t, rec.Experience[2].Company)
	assert.Nil(t, rec.Experience[2].DateRange)

	require.Len(t, rec.Education, 2)
	assert.Equal(t, "Stanford University", *rec.Education[0].Institution)
	assert.Equal(t, "BSc", *rec.Education[0].Degree)
	assert.Equal(t, "2010-2014", *rec.Education[0].DateRange)
	assert.Equal(t, "Massachusetts Institute of Technology", *rec.Education[1].Institution)
	assert.Equal(t, "Master", *rec.Education[1].Degree)
	assert.Equal(t, "2016", *rec.Education[1].DateRange)

	assert.Equal(t, []string{"Go", "Rust", "SQL"}, rec.Skills)
	assert.Equal(t, []string{"Bouldering", "chess"}, rec.Interests)
	assert.Equal(t, []Post{{Content: "Why we rewrote our storage engine"}, {Content: "Notes from GopherCon"}}, rec.Posts)

	assert.Equal(t, analysisResponse, rec.RawText)
	assert.Empty(t, rec.Error)
}

func TestParseAnalysisInlineHeader(t *testing.T) {
	rec := ParseAnalysis("# Name: Jane Smith\n# Interests: sailing, jazz")
	require.NotNil(t, rec.Name)
	assert.Equal(t, "Jane Smith", *rec.Name)
	assert.Equal(t, []string{"sailing", "jazz"}, rec.Interests)
}

func TestParseAnalysisUnstructured(t *testing.T) {
	text := "Jane seems to be a private person with little online presence."
	rec := ParseAnalysis(text)
	assert.True(t, rec.Empty())
	assert.Equal(t, text, rec.RawText)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":null,"title":null,"bio":null,"experience":[],"education":[],
		"skills":[],"interests":[],"posts":[],"raw_text":"`+text+`"}`, string(data))
}

func TestParseAnalysisIsPure(t *testing.T) {
	a := ParseAnalysis(analysisResponse)
	b := ParseAnalysis(analysisResponse)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("ParseAnalysis is not deterministic (-first +second):\n%s", diff)
	}
	assert.NotSame(t, a.Name, b.Name)
}
