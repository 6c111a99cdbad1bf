package persistent

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rankings-admin/pkg/slug"
	"rankings-admin/services/ranking/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedResult counts the rows a seed run actually inserted.
type SeedResult struct {
	Rankings int
	Items    int
	Skipped  int
}

// Seed copies a JSON document into the database. Rankings that already exist
// (same id or slug) are left alone together with their items, so running it
// twice is harmless. Ids that are not UUIDs are replaced and item references
// follow them.
func Seed(ctx context.Context, db *gorm.DB, doc *JSONDocument, slugs *slug.Generator, now time.Time) (SeedResult, error) {
	var result SeedResult
	ids := make(map[string]string, len(doc.Rankings))

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ranking := range doc.Rankings {
			if ranking == nil || ranking.Title == "" {
				result.Skipped++
				continue
			}

			seeded := normalizeSeedRanking(*ranking, slugs, now)

			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(ToRankingModel(&seeded))
			if res.Error != nil {
				return fmt.Errorf("seed ranking %q: %w", ranking.Title, res.Error)
			}
			if res.RowsAffected == 0 {
				result.Skipped++
				continue
			}
			ids[ranking.ID] = seeded.ID
			result.Rankings++
		}

		for rankingID, items := range groupSeedItems(doc.Items, ids) {
			for i, item := range items {
				item.RankingID = rankingID
				item.Position = i + 1
				if _, err := uuid.Parse(item.ID); err != nil {
					item.ID = uuid.New().String()
				}
				if item.CreatedAt.IsZero() {
					item.CreatedAt = now
				}
				if item.UpdatedAt.IsZero() {
					item.UpdatedAt = item.CreatedAt
				}

				res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(ToRankingItemModel(&item))
				if res.Error != nil {
					return fmt.Errorf("seed item %q: %w", item.Title, res.Error)
				}
				if res.RowsAffected == 0 {
					result.Skipped++
					continue
				}
				result.Items++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return result, nil
}

func normalizeSeedRanking(r entity.Ranking, slugs *slug.Generator, now time.Time) entity.Ranking {
	if _, err := uuid.Parse(r.ID); err != nil {
		r.ID = uuid.New().String()
	}
	if !slug.Valid(r.Slug) {
		r.Slug = slugs.Generate(r.Title)
	}
	if !r.Status.Valid() {
		r.Status = entity.StatusDraft
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	if r.CycleEndDate.IsZero() {
		r.CycleEndDate = cycleEnd(r.CreatedAt, entity.DefaultCycleLengthDays)
	}
	r.DeletedAt = nil
	return r
}

// groupSeedItems buckets items under their new ranking ids, keeping the
// document's relative order. Items of unknown rankings are dropped.
func groupSeedItems(items []*entity.RankingItem, ids map[string]string) map[string][]entity.RankingItem {
	grouped := make(map[string][]entity.RankingItem)
	for _, item := range items {
		if item == nil {
			continue
		}
		rankingID, ok := ids[item.RankingID]
		if !ok {
			continue
		}
		grouped[rankingID] = append(grouped[rankingID], *item)
	}

	for _, bucket := range grouped {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Position < bucket[j].Position
		})
	}
	return grouped
}
