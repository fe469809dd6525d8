// Package ranking ranks job descriptions by how well one resume covers them.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/types"
	"golang.org/x/sync/errgroup"
)

// JobInput is one job description to rank.
type JobInput struct {
	Source string // file path, URL or label
	Text   string
}

// maxListedKeywords bounds how many keywords a note names.
const maxListedKeywords = 5

// RankJobs compares resume against every job and returns the jobs sorted by
// match percentage, then weighted score of the matched keywords, then source.
// Comparisons run in parallel; ctx cancellation stops pending ones.
func RankJobs(ctx context.Context, extractor *keywords.Extractor, resume string, jobs []JobInput) (*types.JobRanking, error) {
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}
	if len(jobs) == 0 {
		return nil, errors.New("no job descriptions to rank")
	}

	ranked := make([]types.RankedJob, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if strings.TrimSpace(job.Text) == "" {
				return fmt.Errorf("job description %q is empty", job.Source)
			}
			ranked[i] = rankJob(extractor, resume, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		if a.WeightedScore != b.WeightedScore {
			return a.WeightedScore > b.WeightedScore
		}
		return a.Source < b.Source
	})

	return &types.JobRanking{Ranked: ranked}, nil
}

func rankJob(extractor *keywords.Extractor, resume string, job JobInput) types.RankedJob {
	comparison := extractor.Compare(resume, job.Text)
	coverage := computeCategoryCoverage(comparison, extractor.Taxonomy())

	return types.RankedJob{
		Source:          job.Source,
		MatchPercentage: comparison.MatchPercentage,
		WeightedScore:   matchedWeightedScore(comparison, extractor.Taxonomy()),
		Rating:          comparison.Rating,
		Matched:         comparison.Matched,
		Missing:         comparison.Missing,
		Notes:           generateNotes(comparison, coverage),
	}
}

// generateNotes creates a brief explanation of the ranking.
func generateNotes(comparison *types.ComparisonResult, coverage []categoryCoverage) string {
	total := len(comparison.Matched) + len(comparison.Missing)
	if total == 0 {
		return "No taxonomy keywords found in job description"
	}

	var parts []string

	switch comparison.Rating {
	case types.RatingStrong:
		parts = append(parts, fmt.Sprintf("Strong match (%d of %d keywords)", len(comparison.Matched), total))
	case types.RatingFair:
		parts = append(parts, fmt.Sprintf("Fair match (%d of %d keywords)", len(comparison.Matched), total))
	default:
		parts = append(parts, fmt.Sprintf("Weak match (%d of %d keywords)", len(comparison.Matched), total))
	}

	if best, worst, ok := strongestAndWeakest(coverage); ok && best.category != worst.category {
		if best.matched > 0 {
			parts = append(parts, fmt.Sprintf("Best covered: %s", best.category))
		}
		if worst.matched < worst.total {
			parts = append(parts, fmt.Sprintf("Weakest: %s", worst.category))
		}
	}

	if len(comparison.Missing) > 0 {
		parts = append(parts, "Missing "+listKeywords(comparison.Missing))
	}

	return strings.Join(parts, ". ")
}

func listKeywords(kws []string) string {
	if len(kws) <= maxListedKeywords {
		return strings.Join(kws, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(kws[:maxListedKeywords], ", "), len(kws)-maxListedKeywords)
}
