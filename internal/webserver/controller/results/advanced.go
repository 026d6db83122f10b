package results

import (
	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
)

type advancedField struct {
	Field        string `json:"field"`
	Label        string `json:"label"`
	Hierarchical bool   `json:"hierarchical"`
}

// AdvancedForm returns the advanced search of the session, or an empty one, along with
// the fields that can be searched
func (s *Controller) AdvancedForm(c *fiber.Ctx) error {
	state := controller.State(c)
	nav := state.Search

	form := search.NewAdvancedSearch(s.config.AdvancedGroups, s.config.AdvancedItems)
	if adv := nav.Advanced(); adv != nil {
		form = *adv
	}

	t := s.translator(c)
	fields := make([]advancedField, len(s.config.AdvancedFields))
	for i, f := range s.config.AdvancedFields {
		fields[i] = advancedField{Field: f.Field, Label: t(f.Label), Hierarchical: f.Hierarchical}
	}

	state.Navigation = state.Navigation.Visit(navigation.ViewSearchAdvanced, c.Path(), navigation.WeightSearch)
	return c.JSON(fiber.Map{
		"form":      form,
		"fields":    fields,
		"operators": []string{search.OperatorAnd.String(), search.OperatorOr.String(), search.OperatorNot.String(), search.OperatorPhrase.String(), search.OperatorIs.String()},
	})
}

// Advanced compiles the advanced search sent in the request body and runs it
func (s *Controller) Advanced(c *fiber.Ctx) error {
	var form search.AdvancedSearch
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed query")
	}

	nav := controller.State(c).Search
	nav.SetAdvancedSearch(form, s.translator(c))
	if err := s.applyArguments(c, nav); err != nil {
		return err
	}

	s.metrics.Search("advanced")
	return s.run(c, nav)
}
