// Package model defines the shared data shapes for the aggregation engine.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Category classifies a source as domestic or global.
type Category string

const (
	CategoryDomestic Category = "domestic"
	CategoryGlobal   Category = "global"
)

// Valid reports whether the category is one of the known literals.
func (c Category) Valid() bool {
	return c == CategoryDomestic || c == CategoryGlobal
}

// HotValue is a heat indicator that upstreams report either as a string
// ("1.2万") or as a bare number. It round-trips whichever form it held.
type HotValue struct {
	Str   string
	Num   int64
	IsNum bool
	Set   bool
}

// HotValueFromString builds a string-form hot value.
func HotValueFromString(s string) HotValue {
	return HotValue{Str: s, Set: true}
}

// HotValueFromInt builds a numeric-form hot value.
func HotValueFromInt(n int64) HotValue {
	return HotValue{Num: n, IsNum: true, Set: true}
}

// String renders the value regardless of form. Empty when unset.
func (h HotValue) String() string {
	if !h.Set {
		return ""
	}
	if h.IsNum {
		return strconv.FormatInt(h.Num, 10)
	}
	return h.Str
}

// MarshalJSON emits a number, a string, or null when unset.
func (h HotValue) MarshalJSON() ([]byte, error) {
	if !h.Set {
		return []byte("null"), nil
	}
	if h.IsNum {
		return []byte(strconv.FormatInt(h.Num, 10)), nil
	}
	return json.Marshal(h.Str)
}

// UnmarshalJSON accepts a JSON number, string, or null.
func (h *HotValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*h = HotValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "model: unmarshal hot value string")
		}
		*h = HotValueFromString(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		// Some upstreams send floats for heat. Truncate.
		var f float64
		if ferr := json.Unmarshal(data, &f); ferr != nil {
			return eris.Wrap(err, "model: unmarshal hot value number")
		}
		n = int64(f)
	}
	*h = HotValueFromInt(n)
	return nil
}

// NewsRecord is one normalized trending item.
type NewsRecord struct {
	Title            string    `json:"title"`
	URL              string    `json:"url,omitempty"`
	HotValue         HotValue  `json:"hot_value,omitempty"`
	Rank             int       `json:"rank"`
	Source           string    `json:"source"`
	Timestamp        time.Time `json:"timestamp"`
	Description      string    `json:"description,omitempty"`
	Origin           string    `json:"origin"`
	ControversyScore float64   `json:"controversy_score"`
	EngagementScore  float64   `json:"engagement_score"`
}

// SourceResult is the ordered listing fetched from (or synthesized for)
// one source. TotalCount always equals len(NewsList) and ranks run 1..n
// in upstream response order.
type SourceResult struct {
	Source     string       `json:"source"`
	NewsList   []NewsRecord `json:"news_list"`
	UpdateTime time.Time    `json:"update_time"`
	TotalCount int          `json:"total_count"`
	Category   Category     `json:"category"`
}

// ControversyBands counts records in three disjoint score bands.
type ControversyBands struct {
	Mean   float64 `json:"mean"`
	High   int     `json:"high"`   // score > 0.7
	Medium int     `json:"medium"` // 0.3 < score <= 0.7
	Low    int     `json:"low"`    // score <= 0.3
}

// TrendReport is the cross-source trend reduction.
type TrendReport struct {
	HotKeywords     []string         `json:"hot_keywords"`     // frequency-ranked, max 10
	TrendingTopics  []string         `json:"trending_topics"`  // first 20 titles in iteration order
	PlatformSummary map[string]int   `json:"platform_summary"` // source label -> total_count
	AnalysisTime    time.Time        `json:"analysis_time"`
	Controversy     ControversyBands `json:"controversy"`
}

// ControversyReport ranks records by controversy score.
type ControversyReport struct {
	TopRecords    []NewsRecord `json:"top_records"`
	TotalAnalyzed int          `json:"total_analyzed"`
	MeanScore     float64      `json:"mean_score"`
	AnalysisTime  time.Time    `json:"analysis_time"`
}
