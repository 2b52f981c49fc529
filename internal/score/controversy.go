// Package score holds the lexical controversy heuristic and the
// engagement scale used when normalizing upstream records.
package score

import (
	"strings"

	"golang.org/x/text/width"
)

// Keyword weight bands. Matching is substring-based over the folded,
// lower-cased text; each matched keyword contributes its weight once
// and the raw score is the mean of all matched weights.
var keywordWeights = map[string]float64{
	// High-intensity events.
	"爆炸": 1.0, "丑闻": 1.0, "冲突": 1.0, "罢工": 1.0, "抵制": 1.0,
	"scandal": 1.0, "outrage": 1.0, "explosion": 1.0, "boycott": 1.0, "clash": 1.0,

	// Socially sensitive topics.
	"政治": 0.8, "裁员": 0.8, "房价": 0.8, "疫苗": 0.8, "性别": 0.8,
	"politics": 0.8, "layoff": 0.8, "vaccine": 0.8, "immigration": 0.8, "strike": 0.8,

	// Discussion and questioning.
	"争议": 0.7, "质疑": 0.7, "辟谣": 0.7, "回应": 0.7,
	"controversy": 0.7, "debate": 0.7, "dispute": 0.7, "allegation": 0.7,

	// Emotional affect.
	"愤怒": 0.6, "震惊": 0.6, "泪目": 0.6, "怒斥": 0.6,
	"furious": 0.6, "shocking": 0.6, "slams": 0.6, "backlash": 0.6,

	// Neutral change.
	"改革": 0.5, "新规": 0.5, "调整": 0.5, "上线": 0.5,
	"reform": 0.5, "policy": 0.5, "update": 0.5, "change": 0.5,
}

const (
	questionBonus    = 0.2
	exclamationBonus = 0.1
)

// SyntheticEngagement is the fixed engagement score assigned to
// fallback-generated records.
const SyntheticEngagement = 0.35

// Controversy estimates how contentious a title is, in [0,1]. The text
// is width-folded and lower-cased, scanned against the keyword table,
// and punctuation bonuses are added before clamping. Deterministic and
// stateless; an empty or keyword-free text without punctuation scores 0.
func Controversy(text string) float64 {
	if text == "" {
		return 0
	}
	normalized := strings.ToLower(width.Fold.String(text))

	var sum float64
	var matched int
	for kw, weight := range keywordWeights {
		if strings.Contains(normalized, kw) {
			sum += weight
			matched++
		}
	}

	var s float64
	if matched > 0 {
		s = sum / float64(matched)
	}
	if strings.ContainsAny(text, "?？") {
		s += questionBonus
	}
	if strings.ContainsAny(text, "!！") {
		s += exclamationBonus
	}
	return clamp01(s)
}

// Engagement maps a 1-based rank within a listing of total items onto
// [0,1], linearly from 1.0 at rank 1 down toward 0 at the tail.
func Engagement(rank, total int) float64 {
	if total < 1 {
		total = 1
	}
	if rank < 1 {
		rank = 1
	}
	return clamp01(1 - float64(rank-1)/float64(total))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
