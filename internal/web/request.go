package web

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/FahmidKDAU/kyo-document-control/internal/catalog"
	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// listRequest is the validated form of a list query string.
type listRequest struct {
	Category string
	Search   string
	Sort     string `validate:"omitempty,oneof=name type releasedate category functionsubfn downloadoriginalfiletype"`
	Order    string `validate:"omitempty,oneof=asc desc"`
}

// parseListQuery reads the list state from the category path segment and the
// query string. Filters and search use the navigation codec's parameters.
func parseListQuery(category string, values url.Values) (catalog.ListQuery, error) {
	req := listRequest{
		Category: category,
		Search:   values.Get(catalog.ParamSearch),
		Sort:     values.Get(catalog.ParamSort),
		Order:    strings.ToLower(values.Get(catalog.ParamOrder)),
	}
	if err := validate.Struct(req); err != nil {
		return catalog.ListQuery{}, validationError(err)
	}

	state := catalog.DecodeNavigation(values)
	q := catalog.ListQuery{
		Category: req.Category,
		Search:   state.Search,
		Filters:  state.Filters,
		Sort:     catalog.DefaultSort,
	}
	if req.Sort != "" {
		q.Sort.Field = req.Sort
	}
	if req.Order != "" {
		q.Sort.Direction = domain.SortDirection(req.Order)
	}
	return q, nil
}

// validationError turns validator errors into a short client-facing message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", strings.ToLower(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
}
