// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package recommend

import (
	"strconv"
	"strings"
	"time"
)

// ContentRecord is one content item as read from the store.
type ContentRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Author          string    `json:"author"`
	Category        string    `json:"category,omitempty"`
	Tags            []string  `json:"tags"`
	ViewCount       int64     `json:"view_count"`
	BeneficialCount int64     `json:"beneficial_count"`
	Rating          float64   `json:"rating"`
	CreatedAt       time.Time `json:"created_at"`
}

// RecommendationResult is one recommendable item with its provenance.
type RecommendationResult struct {
	ContentID       string    `json:"content_id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Author          string    `json:"author"`
	Category        string    `json:"category,omitempty"`
	Tags            []string  `json:"tags"`
	Score           float64   `json:"score"`
	Reason          string    `json:"reason"`
	ViewCount       int64     `json:"view_count"`
	BeneficialCount int64     `json:"beneficial_count"`
	Rating          float64   `json:"rating"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewResult builds a result from a content record.
//
//nolint:gocritic // hugeParam: records are passed by value to keep results immutable
func NewResult(rec ContentRecord, score float64, reason string) RecommendationResult {
	tags := make([]string, len(rec.Tags))
	copy(tags, rec.Tags)
	return RecommendationResult{
		ContentID:       rec.ID,
		Title:           rec.Title,
		Type:            rec.Type,
		Author:          rec.Author,
		Category:        rec.Category,
		Tags:            tags,
		Score:           score,
		Reason:          reason,
		ViewCount:       rec.ViewCount,
		BeneficialCount: rec.BeneficialCount,
		Rating:          rec.Rating,
		CreatedAt:       rec.CreatedAt,
	}
}

// RecommendationContext is the input envelope for one recommendation request.
type RecommendationContext struct {
	// UserID enables history-based recommendations and view filtering.
	UserID string `json:"user_id,omitempty" validate:"omitempty,max=128"`

	// ContentID is the anchor item for tag and structured strategies. It is
	// never recommended back.
	ContentID string `json:"content_id,omitempty" validate:"omitempty,max=128"`

	// HalaqaIDs scopes trending to the given study groups.
	HalaqaIDs []string `json:"halaqa_ids,omitempty" validate:"omitempty,max=50,dive,required,max=128"`

	// Category filters editorial picks.
	Category string `json:"category,omitempty" validate:"omitempty,max=64"`

	// SessionHistory is the ordered list of items viewed in this session.
	SessionHistory []string `json:"session_history,omitempty" validate:"omitempty,max=100,dive,required,max=128"`

	// Limit caps the result size. Zero means the engine default.
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`

	// ExcludeViewed removes items in the user's view history.
	ExcludeViewed bool `json:"exclude_viewed,omitempty"`
}

// cacheKey identifies a context for result caching.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (rc RecommendationContext) cacheKey() string {
	var b strings.Builder
	b.WriteString(rc.UserID)
	b.WriteByte('|')
	b.WriteString(rc.ContentID)
	b.WriteByte('|')
	b.WriteString(strings.Join(rc.HalaqaIDs, ","))
	b.WriteByte('|')
	b.WriteString(rc.Category)
	b.WriteByte('|')
	b.WriteString(strings.Join(rc.SessionHistory, ","))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(rc.Limit))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(rc.ExcludeViewed))
	return b.String()
}

// View is one view event.
type View struct {
	UserID    string    `json:"user_id"`
	ContentID string    `json:"content_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}

// Relationship is a curated edge from one content item to another.
type Relationship struct {
	SourceID  string  `json:"source_id"`
	RelatedID string  `json:"related_id"`
	Type      string  `json:"type"`
	Strength  float64 `json:"strength"`
}

// EditorialPick is a curator-entered recommendation.
type EditorialPick struct {
	ContentID string  `json:"content_id"`
	Category  string  `json:"category,omitempty"`
	Priority  float64 `json:"priority"`
	Reason    string  `json:"reason,omitempty"`
}
