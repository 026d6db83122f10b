package cms

import (
	"strconv"

	"github.com/docviewer/viewer/internal/cmsindex"
	"github.com/docviewer/viewer/internal/result"
	"github.com/docviewer/viewer/internal/webserver/model"
	"go.uber.org/zap"
)

type pagesRepository interface {
	List(page, resultsPerPage int, language string, withUnpublished bool) (result.Paginated[[]model.CMSPage], error)
	FindBySlug(slug string) (*model.CMSPage, error)
	SlugExists(slug string, id uint) (bool, error)
	Create(page *model.CMSPage) error
	Update(page *model.CMSPage) error
	Delete(id uint) error
}

type pagesIndex interface {
	Add(page cmsindex.Page) error
	Remove(id string) error
	Search(keywords, language string, page, resultsPerPage int) (result.Paginated[[]cmsindex.Hit], error)
}

type languageDetector interface {
	Detect(text string) string
}

// Controller manages the editorial pages
type Controller struct {
	repository pagesRepository
	index      pagesIndex
	detector   languageDetector
	logger     *zap.Logger
}

func NewController(repository pagesRepository, index pagesIndex, detector languageDetector, logger *zap.Logger) *Controller {
	return &Controller{
		repository: repository,
		index:      index,
		detector:   detector,
		logger:     logger,
	}
}

// Indexable returns the page in the form kept by the search index
func Indexable(page model.CMSPage) cmsindex.Page {
	return cmsindex.Page{
		ID:       strconv.FormatUint(uint64(page.ID), 10),
		Slug:     page.Slug,
		Title:    page.Title,
		Content:  page.Content,
		Language: page.Language,
	}
}

// sync makes the search index reflect page: published pages are indexed, the rest removed.
// Index failures are logged, as the database stays the reference.
func (cc *Controller) sync(page model.CMSPage) {
	var err error
	if page.Published {
		err = cc.index.Add(Indexable(page))
	} else {
		err = cc.index.Remove(Indexable(page).ID)
	}
	if err != nil {
		cc.logger.Error("error updating pages index", zap.String("slug", page.Slug), zap.Error(err))
	}
}
