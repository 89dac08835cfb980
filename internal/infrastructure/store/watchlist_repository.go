package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joystick-informer/backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchlistRepository persists watchlists via GORM
type WatchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Get returns the user's watchlist. A user with no stored row gets an
// empty watchlist, not an error.
func (r *WatchlistRepository) Get(ctx context.Context, userID string) (*domain.Watchlist, error) {
	var record watchlistRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.Watchlist{UserID: userID, GameIDs: []int{}, RelatedIDs: []int{}}, nil
		}
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}

	list := &domain.Watchlist{UserID: userID}
	if err := decodeIDs(record.GameIDs, &list.GameIDs); err != nil {
		return nil, fmt.Errorf("corrupt gameIds for user %s: %w", userID, err)
	}
	if err := decodeIDs(record.RelatedIDs, &list.RelatedIDs); err != nil {
		return nil, fmt.Errorf("corrupt relatedIds for user %s: %w", userID, err)
	}

	return list, nil
}

// Save upserts the user's watchlist
func (r *WatchlistRepository) Save(ctx context.Context, list *domain.Watchlist) error {
	gameIDs, err := encodeIDs(list.GameIDs)
	if err != nil {
		return err
	}
	relatedIDs, err := encodeIDs(list.RelatedIDs)
	if err != nil {
		return err
	}

	record := watchlistRecord{
		UserID:     list.UserID,
		GameIDs:    gameIDs,
		RelatedIDs: relatedIDs,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"game_ids", "related_ids", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}

	return nil
}

func encodeIDs(ids []int) (string, error) {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode id list: %w", err)
	}
	return string(data), nil
}

func decodeIDs(data string, out *[]int) error {
	if data == "" {
		*out = []int{}
		return nil
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return err
	}
	if *out == nil {
		*out = []int{}
	}
	return nil
}
