package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankingModel_BeforeCreate(t *testing.T) {
	ranking := &RankingModel{Title: "Best Films"}

	err := ranking.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, ranking.ID)
}

func TestRankingModel_BeforeCreate_WithID(t *testing.T) {
	ranking := &RankingModel{ID: "existing-id", Title: "Best Films"}

	err := ranking.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, "existing-id", ranking.ID)
}

func TestRankingItemModel_BeforeCreate(t *testing.T) {
	item := &RankingItemModel{RankingID: "r-1", Title: "Heat"}

	err := item.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, item.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "rankings", RankingModel{}.TableName())
	assert.Equal(t, "ranking_items", RankingItemModel{}.TableName())
}
