package user

import (
	"time"

	"github.com/docviewer/viewer/internal/result"
	"github.com/docviewer/viewer/internal/webserver/model"
)

type usersRepository interface {
	List(page int, resultsPerPage int, filter string) (result.Paginated[[]model.User], error)
	FindByUuid(uuid string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Admins() int64
	Delete(uuid string) error
}

type savedSearchesRepository interface {
	List(userID uint, page, resultsPerPage int) (result.Paginated[[]model.SavedSearch], error)
	Find(userID, id uint) (*model.SavedSearch, error)
	Create(s *model.SavedSearch) error
	Update(s *model.SavedSearch) error
	Delete(userID, id uint) error
}

type Config struct {
	MinPasswordLength int
	Secret            []byte
	SessionTimeout    time.Duration
}

type Controller struct {
	repository    usersRepository
	savedSearches savedSearchesRepository
	config        Config
}

// NewController returns a new instance of the users controller
func NewController(repository usersRepository, savedSearches savedSearchesRepository, cfg Config) *Controller {
	return &Controller{
		repository:    repository,
		savedSearches: savedSearches,
		config:        cfg,
	}
}
