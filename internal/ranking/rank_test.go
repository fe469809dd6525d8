package ranking

import (
	"context"
	"testing"

	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor(t *testing.T) *keywords.Extractor {
	t.Helper()
	tax, err := keywords.NewTaxonomy([]keywords.Category{
		{Name: "languages", Keywords: []string{"go", "python", "rust"}},
		{Name: "cloud", Keywords: []string{"aws", "docker", "kubernetes"}},
	}, map[string]float64{"languages": 2})
	require.NoError(t, err)

	e, err := keywords.NewExtractor(tax, keywords.DefaultOptions())
	require.NoError(t, err)
	return e
}

const resume = "Go and Python engineer shipping Docker images"

func TestRankJobs_SortingByMatchPercentage(t *testing.T) {
	jobs := []JobInput{
		{Source: "weak.txt", Text: "rust aws kubernetes go"},
		{Source: "strong.txt", Text: "go python docker"},
		{Source: "fair.txt", Text: "go docker aws kubernetes"},
	}

	ranking, err := RankJobs(context.Background(), testExtractor(t), resume, jobs)
	require.NoError(t, err)
	require.Len(t, ranking.Ranked, 3)

	assert.Equal(t, "strong.txt", ranking.Ranked[0].Source)
	assert.Equal(t, 100, ranking.Ranked[0].MatchPercentage)
	assert.Equal(t, types.RatingStrong, ranking.Ranked[0].Rating)

	assert.Equal(t, "fair.txt", ranking.Ranked[1].Source)
	assert.Equal(t, 50, ranking.Ranked[1].MatchPercentage)
	assert.Equal(t, types.RatingFair, ranking.Ranked[1].Rating)

	assert.Equal(t, "weak.txt", ranking.Ranked[2].Source)
	assert.Equal(t, 25, ranking.Ranked[2].MatchPercentage)
	assert.Equal(t, types.RatingWeak, ranking.Ranked[2].Rating)
	assert.Equal(t, []string{"go"}, ranking.Ranked[2].Matched)
	assert.Equal(t, []string{"aws", "kubernetes", "rust"}, ranking.Ranked[2].Missing)
}

func TestRankJobs_TiesBrokenByWeightedScore(t *testing.T) {
	// Both jobs are 50% covered; the first repeats the matched language.
	jobs := []JobInput{
		{Source: "b.txt", Text: "docker aws"},
		{Source: "a.txt", Text: "go go go rust"},
	}

	ranking, err := RankJobs(context.Background(), testExtractor(t), resume, jobs)
	require.NoError(t, err)

	assert.Equal(t, "a.txt", ranking.Ranked[0].Source)
	assert.Equal(t, 6, ranking.Ranked[0].WeightedScore)
	assert.Equal(t, "b.txt", ranking.Ranked[1].Source)
	assert.Equal(t, 1, ranking.Ranked[1].WeightedScore)
}

func TestRankJobs_TiesBrokenBySource(t *testing.T) {
	jobs := []JobInput{
		{Source: "z.txt", Text: "go rust"},
		{Source: "m.txt", Text: "go rust"},
	}

	ranking, err := RankJobs(context.Background(), testExtractor(t), resume, jobs)
	require.NoError(t, err)
	assert.Equal(t, "m.txt", ranking.Ranked[0].Source)
	assert.Equal(t, "z.txt", ranking.Ranked[1].Source)
}

func TestRankJobs_Deterministic(t *testing.T) {
	jobs := []JobInput{
		{Source: "1", Text: "go docker"},
		{Source: "2", Text: "rust aws"},
		{Source: "3", Text: "python kubernetes"},
		{Source: "4", Text: "go python rust"},
	}
	e := testExtractor(t)

	first, err := RankJobs(context.Background(), e, resume, jobs)
	require.NoError(t, err)
	for range 5 {
		again, err := RankJobs(context.Background(), e, resume, jobs)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRankJobs_NoteGeneration(t *testing.T) {
	jobs := []JobInput{{Source: "job", Text: "go python aws kubernetes"}}

	ranking, err := RankJobs(context.Background(), testExtractor(t), resume, jobs)
	require.NoError(t, err)

	notes := ranking.Ranked[0].Notes
	assert.Contains(t, notes, "Fair match (2 of 4 keywords)")
	assert.Contains(t, notes, "Best covered: languages")
	assert.Contains(t, notes, "Weakest: cloud")
	assert.Contains(t, notes, "Missing aws, kubernetes")
}

func TestRankJobs_JobWithoutKeywords(t *testing.T) {
	jobs := []JobInput{{Source: "vague", Text: "we value teamwork"}}

	ranking, err := RankJobs(context.Background(), testExtractor(t), resume, jobs)
	require.NoError(t, err)
	assert.Equal(t, 0, ranking.Ranked[0].MatchPercentage)
	assert.Equal(t, "No taxonomy keywords found in job description", ranking.Ranked[0].Notes)
}

func TestRankJobs_Errors(t *testing.T) {
	e := testExtractor(t)

	_, err := RankJobs(context.Background(), nil, resume, []JobInput{{Source: "a", Text: "go"}})
	assert.Error(t, err)

	_, err = RankJobs(context.Background(), e, resume, nil)
	assert.Error(t, err)

	_, err = RankJobs(context.Background(), e, resume, []JobInput{{Source: "blank.txt", Text: "  \n"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blank.txt")
}

func TestRankJobs_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RankJobs(ctx, testExtractor(t), resume, []JobInput{{Source: "a", Text: "go"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListKeywords(t *testing.T) {
	assert.Equal(t, "a, b", listKeywords([]string{"a", "b"}))
	assert.Equal(t, "a, b, c, d, e and 2 more", listKeywords([]string{"a", "b", "c", "d", "e", "f", "g"}))
}
