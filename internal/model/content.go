package model

import (
	"strings"
	"time"
)

// ContentKind names a class of generated content.
type ContentKind string

// General content kinds. News kinds are built with NewsKind.
const (
	KindAcademicTrends ContentKind = "academic_trends"
	KindFinancialTips  ContentKind = "financial_tips"
	KindWellnessTips   ContentKind = "wellness_tips"
	KindCareerInsights ContentKind = "career_insights"

	newsPrefix = "news:"
)

// GeneralKinds lists the kinds refreshed together.
var GeneralKinds = []ContentKind{
	KindAcademicTrends,
	KindFinancialTips,
	KindWellnessTips,
	KindCareerInsights,
}

// NewsKind returns the kind holding news for topic.
func NewsKind(topic string) ContentKind {
	return ContentKind(newsPrefix + strings.ToLower(strings.TrimSpace(topic)))
}

// NewsTopic returns the topic of a news kind and whether k is one.
func (k ContentKind) NewsTopic() (string, bool) {
	topic, ok := strings.CutPrefix(string(k), newsPrefix)
	if !ok || topic == "" {
		return "", false
	}
	return topic, true
}

// Item is one generated content entry; its fields depend on the kind.
type Item map[string]string

// CachedContent is the persisted state of one content kind. LastUpdated is
// nil whenever Items hold built-in content.
type CachedContent struct {
	LastUpdated *time.Time `json:"last_updated"`
	Items       []Item     `json:"items"`
}
