package strategy

// Canonical record keys as they appear on the wire.
const (
	KeyStrategicOverview = "strategic_overview"
	KeyContentPillars    = "content_pillars"
	KeyContentCalendar   = "content_calendar"
	KeyKeywords          = "keywords"
	KeyROIPrediction     = "roi_prediction"
	KeyPersonas          = "personas"
	KeyCompetitorGaps    = "competitor_gaps"
	KeySamplePosts       = "sample_posts"

	// Passthrough identity fields
	KeyID       = "id"
	KeyIndustry = "industry"
	KeyPlatform = "platform"
)

// contentKeys are the fields that gate validity: a record counts as a
// strategy only if at least one of them is present.
var contentKeys = [...]string{
	KeyStrategicOverview,
	KeyContentPillars,
	KeyContentCalendar,
	KeyKeywords,
	KeyROIPrediction,
}

// Record is the canonical strategy shape all consumers expect, regardless
// of which backend revision produced the payload. A nil Record means
// normalization failed.
type Record map[string]any

// Valid reports whether the record carries at least one content-bearing
// key. Presence gates validity, not non-emptiness: an empty list under
// "content_pillars" still counts.
func (r Record) Valid() bool {
	if r == nil {
		return false
	}
	for _, key := range contentKeys {
		if value, ok := r[key]; ok && value != nil {
			return true
		}
	}
	return false
}

// ID returns the passthrough identity field, if present.
func (r Record) ID() string { return r.stringField(KeyID) }

// Industry returns the passthrough industry field, if present.
func (r Record) Industry() string { return r.stringField(KeyIndustry) }

// Platform returns the passthrough platform field, if present.
func (r Record) Platform() string { return r.stringField(KeyPlatform) }

func (r Record) stringField(key string) string {
	value, _ := r[key].(string)
	return value
}
