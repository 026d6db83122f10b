package model

import (
	"errors"

	"github.com/docviewer/viewer/internal/result"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CMSPageRepository struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// List returns the pages in language, newest first. Unpublished pages are only included
// if withUnpublished is set.
func (r *CMSPageRepository) List(page, resultsPerPage int, language string, withUnpublished bool) (result.Paginated[[]CMSPage], error) {
	query := r.DB.Model(&CMSPage{})
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if !withUnpublished {
		query = query.Where("published = ?", true)
	}

	pages, err := paginated[CMSPage](query, page, resultsPerPage, "updated_at DESC")
	if err != nil {
		r.Logger.Error("error listing pages", zap.Error(err))
	}
	return pages, err
}

// All returns every page, used to rebuild the search index
func (r *CMSPageRepository) All() ([]CMSPage, error) {
	var pages []CMSPage
	if res := r.DB.Order("id ASC").Find(&pages); res.Error != nil {
		return nil, res.Error
	}
	return pages, nil
}

func (r *CMSPageRepository) FindBySlug(slug string) (*CMSPage, error) {
	var page CMSPage

	res := r.DB.Where("slug = ?", slug).First(&page)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &page, res.Error
}

// SlugExists reports whether a page other than the one with id uses slug
func (r *CMSPageRepository) SlugExists(slug string, id uint) (bool, error) {
	var totalRows int64
	res := r.DB.Model(&CMSPage{}).Where("slug = ? AND id <> ?", slug, id).Count(&totalRows)
	return totalRows > 0, res.Error
}

func (r *CMSPageRepository) Create(page *CMSPage) error {
	if res := r.DB.Create(page); res.Error != nil {
		r.Logger.Error("error creating page", zap.Error(res.Error))
		return res.Error
	}
	return nil
}

func (r *CMSPageRepository) Update(page *CMSPage) error {
	if res := r.DB.Save(page); res.Error != nil {
		r.Logger.Error("error updating page", zap.Error(res.Error))
		return res.Error
	}
	return nil
}

func (r *CMSPageRepository) Delete(id uint) error {
	if res := r.DB.Delete(&CMSPage{}, id); res.Error != nil {
		r.Logger.Error("error deleting page", zap.Error(res.Error))
		return res.Error
	}
	return nil
}
