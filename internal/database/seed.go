// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/query"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// demoItem is a compact description of one seeded content record.
type demoItem struct {
	id, title, kind, author, category string
	tags                              []string
	views, beneficial                 int64
	rating                            float64
	ageDays                           int
}

var demoCatalogue = []demoItem{
	{"c-fatiha", "Reflections on Surah al-Fatiha", "lecture", "Imam Yusuf", "quran", []string{"quran", "tafsir", "fatiha"}, 1240, 310, 4.9, 400},
	{"c-baqarah-1", "Surah al-Baqarah: Part 1", "series", "Imam Yusuf", "quran", []string{"quran", "tafsir", "baqarah"}, 860, 190, 4.7, 300},
	{"c-baqarah-2", "Surah al-Baqarah: Part 2", "series", "Imam Yusuf", "quran", []string{"quran", "tafsir", "baqarah"}, 640, 150, 4.6, 290},
	{"c-tajweed", "Tajweed for Beginners", "course", "Ustadha Maryam", "quran", []string{"quran", "tajweed", "recitation"}, 980, 260, 4.8, 120},
	{"c-nawawi", "The Forty Hadith of Imam Nawawi", "series", "Shaykh Ahmad", "hadith", []string{"hadith", "nawawi", "intentions"}, 1100, 330, 4.9, 500},
	{"c-wudu", "How to Perform Wudu", "article", "Ustadha Maryam", "prayer", []string{"wudu", "salah", "purification"}, 720, 140, 4.5, 200},
	{"c-salah", "The Prophetic Prayer Step by Step", "course", "Shaykh Ahmad", "prayer", []string{"salah", "wudu", "fajr"}, 1500, 420, 4.9, 180},
	{"c-fajr", "Waking Up for Fajr", "article", "Imam Yusuf", "prayer", []string{"fajr", "salah", "habits"}, 430, 90, 4.4, 25},
	{"c-ramadan", "Preparing for Ramadan", "lecture", "Shaykh Ahmad", "fasting", []string{"ramadan", "fasting", "taqwa"}, 890, 240, 4.7, 12},
	{"c-zakat", "Calculating Your Zakat", "article", "Ustadh Bilal", "zakat", []string{"zakat", "charity", "fiqh"}, 380, 75, 4.3, 60},
	{"c-hajj", "A Guide to Hajj and Umrah", "course", "Ustadh Bilal", "hajj", []string{"hajj", "umrah", "pilgrimage"}, 520, 110, 4.6, 5},
	{"c-seerah", "The Life of the Prophet: Makkah", "series", "Shaykh Ahmad", "seerah", []string{"seerah", "makkah", "history"}, 1020, 280, 4.8, 350},
	{"c-aqeedah", "Foundations of Aqeedah", "course", "Ustadh Bilal", "aqeedah", []string{"aqeedah", "tawheed", "belief"}, 610, 160, 4.6, 2},
	{"c-dua", "Morning and Evening Adhkar", "article", "Ustadha Maryam", "dua", []string{"dua", "adhkar", "morning"}, 760, 200, 4.7, 1},
}

// SeedDemo fills an empty database with a small catalogue, view history,
// curated relationships, editorial picks and the built-in synonym table. It
// does nothing when content already exists.
func (s *Store) SeedDemo(ctx context.Context) error {
	var existing int64
	if err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM content`).Scan(&existing); err != nil {
		return fmt.Errorf("failed to count content: %w", err)
	}
	if existing > 0 {
		s.logger.Debug().Int64("items", existing).Msg("content present, skipping demo seed")
		return nil
	}

	now := time.Now().UTC()
	records := make([]recommend.ContentRecord, len(demoCatalogue))
	for i, item := range demoCatalogue {
		records[i] = recommend.ContentRecord{
			ID:              item.id,
			Title:           item.title,
			Type:            item.kind,
			Author:          item.author,
			Category:        item.category,
			Tags:            item.tags,
			ViewCount:       item.views,
			BeneficialCount: item.beneficial,
			Rating:          item.rating,
			CreatedAt:       now.AddDate(0, 0, -item.ageDays),
		}
	}
	if err := s.InsertContent(ctx, records...); err != nil {
		return err
	}

	if err := s.InsertViews(ctx, demoViews(now)...); err != nil {
		return err
	}

	if err := s.InsertRelationships(ctx,
		recommend.Relationship{SourceID: "c-baqarah-1", RelatedID: "c-baqarah-2", Type: "series_next", Strength: 1.0},
		recommend.Relationship{SourceID: "c-baqarah-2", RelatedID: "c-baqarah-1", Type: "series_previous", Strength: 0.8},
		recommend.Relationship{SourceID: "c-fatiha", RelatedID: "c-tajweed", Type: "prerequisite", Strength: 0.7},
		recommend.Relationship{SourceID: "c-wudu", RelatedID: "c-salah", Type: "series_next", Strength: 0.9},
		recommend.Relationship{SourceID: "c-salah", RelatedID: "c-fajr", Type: "related_topic", Strength: 0.6},
		recommend.Relationship{SourceID: "c-ramadan", RelatedID: "c-zakat", Type: "related_topic", Strength: 0.5},
	); err != nil {
		return err
	}

	if err := s.InsertEditorialPicks(ctx,
		recommend.EditorialPick{ContentID: "c-nawawi", Category: "hadith", Priority: 10, Reason: "Essential reading for every student"},
		recommend.EditorialPick{ContentID: "c-salah", Category: "prayer", Priority: 9},
		recommend.EditorialPick{ContentID: "c-ramadan", Category: "fasting", Priority: 8, Reason: "Seasonal pick"},
		recommend.EditorialPick{ContentID: "c-aqeedah", Category: "aqeedah", Priority: 7},
		recommend.EditorialPick{ContentID: "c-fatiha", Category: "quran", Priority: 6},
	); err != nil {
		return err
	}

	if err := s.InsertSynonyms(ctx, query.DefaultSynonyms()); err != nil {
		return err
	}

	s.logger.Info().Int("items", len(records)).Msg("seeded demo content")
	return nil
}

// demoViews builds a deterministic view history: two study groups with
// overlapping paths through the catalogue and one learner outside any group.
func demoViews(now time.Time) []ViewEvent {
	paths := []struct {
		user, halaqa string
		items        []string
	}{
		{"u-amina", "h-fajr-circle", []string{"c-wudu", "c-salah", "c-fajr"}},
		{"u-bilal", "h-fajr-circle", []string{"c-wudu", "c-salah", "c-dua"}},
		{"u-khadija", "h-fajr-circle", []string{"c-salah", "c-fajr", "c-dua"}},
		{"u-omar", "h-quran-study", []string{"c-fatiha", "c-baqarah-1", "c-baqarah-2"}},
		{"u-zaynab", "h-quran-study", []string{"c-fatiha", "c-tajweed", "c-baqarah-1"}},
		{"u-yusuf", "", []string{"c-ramadan", "c-zakat", "c-hajj"}},
	}

	var views []ViewEvent
	for _, p := range paths {
		for i, item := range p.items {
			views = append(views, ViewEvent{
				UserID:    p.user,
				ContentID: item,
				HalaqaID:  p.halaqa,
				ViewedAt:  now.Add(-time.Duration(len(p.items)-i) * 3 * time.Hour),
			})
		}
	}
	return views
}
