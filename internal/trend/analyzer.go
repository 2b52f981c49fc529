// Package trend reduces fetched listings into cross-source trend and
// controversy reports. Pure functions over the data model; no I/O.
package trend

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/trendlens/trendlens/internal/model"
)

const (
	maxKeywords = 10
	maxTopics   = 20
)

// AnalyzeTrends reduces the results into a TrendReport. Hot keywords
// are whitespace tokens longer than two runes ranked by frequency;
// trending topics are the first twenty titles in input iteration
// order, deliberately not re-sorted by any popularity measure.
func AnalyzeTrends(results []model.SourceResult) model.TrendReport {
	report := model.TrendReport{
		PlatformSummary: make(map[string]int, len(results)),
		AnalysisTime:    time.Now(),
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order int

	for _, result := range results {
		report.PlatformSummary[result.Source] = result.TotalCount
		for _, record := range result.NewsList {
			for _, token := range tokenize(record.Title) {
				if _, seen := counts[token]; !seen {
					firstSeen[token] = order
					order++
				}
				counts[token]++
			}
			if len(report.TrendingTopics) < maxTopics {
				report.TrendingTopics = append(report.TrendingTopics, record.Title)
			}
		}
	}

	report.HotKeywords = rankKeywords(counts, firstSeen)
	report.Controversy = controversyBands(results)
	return report
}

// AnalyzeControversy flattens all records and ranks them by
// controversy score, highest first.
func AnalyzeControversy(results []model.SourceResult, topN int) model.ControversyReport {
	var records []model.NewsRecord
	var sum float64
	for _, result := range results {
		for _, record := range result.NewsList {
			records = append(records, record)
			sum += record.ControversyScore
		}
	}

	total := len(records)
	var mean float64
	if total > 0 {
		mean = sum / float64(total)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ControversyScore > records[j].ControversyScore
	})
	if topN >= 0 && len(records) > topN {
		records = records[:topN]
	}

	return model.ControversyReport{
		TopRecords:    records,
		TotalAnalyzed: total,
		MeanScore:     mean,
		AnalysisTime:  time.Now(),
	}
}

// tokenize splits a title on whitespace after NFC normalization and
// width folding, keeping tokens longer than two runes.
func tokenize(title string) []string {
	folded := width.Fold.String(norm.NFC.String(title))
	fields := strings.Fields(folded)
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			out = append(out, f)
		}
	}
	return out
}

// rankKeywords orders tokens by frequency descending, breaking ties by
// first appearance for determinism, and keeps the top ten.
func rankKeywords(counts map[string]int, firstSeen map[string]int) []string {
	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return firstSeen[tokens[i]] < firstSeen[tokens[j]]
	})
	if len(tokens) > maxKeywords {
		tokens = tokens[:maxKeywords]
	}
	return tokens
}

// controversyBands computes the mean score and the three disjoint
// band counts: high > 0.7, medium in (0.3, 0.7], low <= 0.3.
func controversyBands(results []model.SourceResult) model.ControversyBands {
	var bands model.ControversyBands
	var sum float64
	var total int
	for _, result := range results {
		for _, record := range result.NewsList {
			total++
			sum += record.ControversyScore
			switch {
			case record.ControversyScore > 0.7:
				bands.High++
			case record.ControversyScore > 0.3:
				bands.Medium++
			default:
				bands.Low++
			}
		}
	}
	if total > 0 {
		bands.Mean = sum / float64(total)
	}
	return bands
}
