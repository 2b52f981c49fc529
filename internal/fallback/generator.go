// Package fallback produces deterministic synthetic listings used
// whenever a real fetch fails or returns nothing.
package fallback

import (
	"fmt"
	"time"

	"github.com/trendlens/trendlens/internal/model"
	"github.com/trendlens/trendlens/internal/score"
)

// Origin marks records produced by this package.
const Origin = "fallback"

// Description marks synthetic records so consumers can tell them from
// upstream data.
const Description = "synthetic fallback data"

// Per-source title template sets. Sources without a set use the
// generic one.
var titleTemplates = map[string][]string{
	"zhihu":    {"知乎热门话题", "深度思考问题", "专业领域讨论", "生活经验分享", "科技前沿探讨"},
	"weibo":    {"微博热搜话题", "娱乐明星动态", "社会热点事件", "网络流行话题", "突发新闻"},
	"baidu":    {"百度热搜关键词", "搜索热门词汇", "网民关注焦点", "热门搜索词", "流行搜索"},
	"bilibili": {"B站热门视频", "UP主创作", "动漫番剧", "游戏解说", "知识科普"},
	"douyin":   {"抖音热门话题", "短视频话题", "创意挑战", "音乐热门", "生活记录"},
	"toutiao":  {"今日头条新闻", "时事要闻", "社会新闻", "科技资讯", "财经动态"},
	"hupu":     {"虎扑热帖", "体育讨论", "NBA话题", "足球分析", "运动健身"},
	"douban":   {"豆瓣热门", "电影评论", "书籍推荐", "生活小组", "文艺话题"},
	"ithome":   {"IT之家资讯", "科技新闻", "数码产品", "软件更新", "硬件评测"},
	"reddit":   {"Reddit front page post", "Community discussion", "Breaking world news", "Tech announcement", "Viral thread"},
	"twitter":  {"Trending hashtag", "Viral moment", "Live event reaction", "Platform announcement", "Global conversation"},
	"gtrends":  {"Rising search query", "Breakout topic", "Seasonal search spike", "News-driven query", "Popular how-to search"},
}

var genericTemplates = []string{"热点话题", "trending topic"}

// Generator synthesizes SourceResults. Given identical inputs and
// clock it produces identical titles, urls, ranks, and scores.
type Generator struct {
	now func() time.Time
}

// New creates a Generator using the wall clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// WithClock sets the time source, for tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a synthetic listing for the source. Never fails.
// Produces min(limit, template_count) records with strictly decreasing
// synthetic hot values.
func (g *Generator) Generate(sourceID, sourceName string, category model.Category, limit int) model.SourceResult {
	templates, ok := titleTemplates[sourceID]
	if !ok {
		templates = genericTemplates
	}

	n := limit
	if n > len(templates) {
		n = len(templates)
	}
	if n < 0 {
		n = 0
	}

	now := g.now()
	records := make([]model.NewsRecord, 0, n)
	for i := 0; i < n; i++ {
		title := fmt.Sprintf("%s %d", templates[i%len(templates)], i+1)
		records = append(records, model.NewsRecord{
			Title:            title,
			URL:              fmt.Sprintf("https://%s.com/mock/%d", sourceID, i+1),
			HotValue:         model.HotValueFromString(fmt.Sprintf("%d", 1000-i*100)),
			Rank:             i + 1,
			Source:           sourceName,
			Timestamp:        now,
			Description:      Description,
			Origin:           Origin,
			ControversyScore: score.Controversy(title),
			EngagementScore:  score.SyntheticEngagement,
		})
	}

	return model.SourceResult{
		Source:     sourceName,
		NewsList:   records,
		UpdateTime: now,
		TotalCount: len(records),
		Category:   category,
	}
}
