package model

import (
	"errors"

	"github.com/docviewer/viewer/internal/result"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SavedSearchRepository struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func (r *SavedSearchRepository) List(userID uint, page, resultsPerPage int) (result.Paginated[[]SavedSearch], error) {
	searches, err := paginated[SavedSearch](r.DB.Model(&SavedSearch{}).Where("user_id = ?", userID), page, resultsPerPage, "created_at DESC")
	if err != nil {
		r.Logger.Error("error listing saved searches", zap.Error(err))
	}
	return searches, err
}

// Find returns the saved search with id belonging to userID, or nil
func (r *SavedSearchRepository) Find(userID, id uint) (*SavedSearch, error) {
	var s SavedSearch

	res := r.DB.Where("user_id = ? AND id = ?", userID, id).First(&s)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, res.Error
}

func (r *SavedSearchRepository) Create(s *SavedSearch) error {
	if res := r.DB.Create(s); res.Error != nil {
		r.Logger.Error("error saving search", zap.Error(res.Error))
		return res.Error
	}
	return nil
}

func (r *SavedSearchRepository) Update(s *SavedSearch) error {
	return r.DB.Save(s).Error
}

func (r *SavedSearchRepository) Delete(userID, id uint) error {
	if res := r.DB.Where("user_id = ? AND id = ?", userID, id).Delete(&SavedSearch{}); res.Error != nil {
		r.Logger.Error("error deleting saved search", zap.Error(res.Error))
		return res.Error
	}
	return nil
}
