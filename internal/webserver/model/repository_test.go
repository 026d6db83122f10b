package model_test

import (
	"fmt"
	"testing"

	"github.com/docviewer/viewer/internal/webserver/infrastructure"
	"github.com/docviewer/viewer/internal/webserver/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func connect(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infrastructure.Connect("file::memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return db
}

func TestCMSPagesList(t *testing.T) {
	repository := &model.CMSPageRepository{DB: connect(t), Logger: zap.NewNop()}
	for i := 1; i <= 12; i++ {
		page := model.CMSPage{Slug: fmt.Sprintf("page-%d", i), Title: "Page", Language: "en", Published: i%4 != 0}
		if err := repository.Create(&page); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if err := repository.Create(&model.CMSPage{Slug: "seite", Title: "Seite", Language: "de", Published: true}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var cases = []struct {
		name              string
		page              int
		withUnpublished   bool
		expectedHits      int
		expectedTotalHits int
	}{
		{"First page of published pages", 1, false, 9, 9},
		{"First page of all pages", 1, true, 10, 12},
		{"Second page of all pages", 2, true, 2, 12},
		{"Page beyond the last one", 3, true, 0, 12},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			pages, err := repository.List(tcase.page, model.ResultsPerPage, "en", tcase.withUnpublished)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(pages.Hits()) != tcase.expectedHits {
				t.Errorf("Wrong number of hits, expected %d, got %d", tcase.expectedHits, len(pages.Hits()))
			}
			if pages.TotalHits() != tcase.expectedTotalHits {
				t.Errorf("Wrong total hits, expected %d, got %d", tcase.expectedTotalHits, pages.TotalHits())
			}
		})
	}
}

func TestSlugExists(t *testing.T) {
	repository := &model.CMSPageRepository{DB: connect(t), Logger: zap.NewNop()}
	page := model.CMSPage{Slug: "imprint", Title: "Imprint", Language: "en"}
	if err := repository.Create(&page); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if exists, _ := repository.SlugExists("imprint", 0); !exists {
		t.Error("Expected slug to be in use by another page")
	}
	if exists, _ := repository.SlugExists("imprint", page.ID); exists {
		t.Error("Expected slug of the page itself not to count")
	}
	if exists, _ := repository.SlugExists("about", 0); exists {
		t.Error("Expected slug not to be in use")
	}
}

func TestSavedSearchesBelongToTheirUser(t *testing.T) {
	db := connect(t)
	repository := &model.SavedSearchRepository{DB: db, Logger: zap.NewNop()}

	var admin model.User
	db.First(&admin)

	saved := model.SavedSearch{UserID: admin.ID, Name: "Newspapers", Query: "DC:newspaper"}
	if err := repository.Create(&saved); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if found, _ := repository.Find(admin.ID+1, saved.ID); found != nil {
		t.Error("Expected saved search not to be found for another user")
	}
	if err := repository.Delete(admin.ID+1, saved.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	found, err := repository.Find(admin.ID, saved.ID)
	if err != nil || found == nil {
		t.Fatalf("Expected saved search to survive deletion by another user, got %v", err)
	}
	if found.Snapshot().Query != "DC:newspaper" {
		t.Errorf("Wrong query in snapshot: %s", found.Snapshot().Query)
	}

	searches, _ := repository.List(admin.ID, 1, model.ResultsPerPage)
	if searches.TotalHits() != 1 {
		t.Errorf("Expected 1 saved search, got %d", searches.TotalHits())
	}
}

func TestValidatePassword(t *testing.T) {
	var cases = []struct {
		name           string
		password       string
		confirm        string
		expectedErrors []string
	}{
		{"Valid password", "secret", "secret", nil},
		{"Too short", "abc", "abc", []string{"password"}},
		{"Not confirmed", "secret", "", []string{"confirmpassword"}},
		{"Not matching", "secret", "secreto", []string{"confirmpassword"}},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			errs := model.ValidatePassword(tcase.password, tcase.confirm, 5, map[string]string{})
			if len(errs) != len(tcase.expectedErrors) {
				t.Fatalf("Expected errors %v, got %v", tcase.expectedErrors, errs)
			}
			for _, key := range tcase.expectedErrors {
				if _, ok := errs[key]; !ok {
					t.Errorf("Expected error for %s, got %v", key, errs)
				}
			}
		})
	}
}
