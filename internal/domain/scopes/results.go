package scopes

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
)

// Result is one search result.
type Result struct {
	URI      string `json:"uri"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Art      string `json:"art,omitempty"`
}

// Result roles.
const (
	ResultRoleURI listmodel.Role = iota + 1
	ResultRoleTitle
	ResultRoleSubtitle
	ResultRoleArt
	ResultRoleCategoryID
)

var resultRoleNames = map[listmodel.Role]string{
	ResultRoleURI:        "uri",
	ResultRoleTitle:      "title",
	ResultRoleSubtitle:   "subtitle",
	ResultRoleArt:        "art",
	ResultRoleCategoryID: "categoryId",
}

// Results holds the results of one category.
type Results struct {
	listmodel.Notifier
	categoryID string
	results    *listmodel.List[Result]
}

var _ listmodel.Model = (*Results)(nil)

// NewResults returns a Results for categoryID holding results.
func NewResults(categoryID string, results []Result) *Results {
	r := &Results{categoryID: categoryID}
	r.results = listmodel.NewList[Result](&r.Notifier)
	r.results.Reset(results)
	return r
}

// SyntheticResults returns n placeholder results for categoryID.
func SyntheticResults(categoryID string, n int) []Result {
	n = max(n, 0)
	out := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Result{
			URI:      fmt.Sprintf("result://%s/%d", categoryID, i),
			Title:    fmt.Sprintf("Result %d", i),
			Subtitle: fmt.Sprintf("Category %s", categoryID),
			Art:      fmt.Sprintf("art://%s/%d", categoryID, i),
		})
	}
	return out
}

func (r *Results) CategoryID() string { return r.categoryID }

// SetCategoryID renames the category every row reports.
func (r *Results) SetCategoryID(id string) {
	if r.categoryID == id {
		return
	}
	r.categoryID = id
	if n := r.results.Len(); n > 0 {
		r.NotifyDataChanged(0, n-1, ResultRoleCategoryID)
	}
}

// Count returns the number of results.
func (r *Results) Count() int { return r.results.Len() }

func (r *Results) Len() int { return r.results.Len() }

// Get returns the result at i.
func (r *Results) Get(i int) (Result, bool) { return r.results.At(i) }

// Append adds results at the end.
func (r *Results) Append(results ...Result) error { return r.results.Append(results...) }

// Remove deletes the result at i.
func (r *Results) Remove(i int) error {
	_, err := r.results.Remove(i)
	return err
}

func (r *Results) Data(row int, role listmodel.Role) listmodel.Value {
	res, ok := r.results.At(row)
	if !ok {
		return nil
	}
	switch role {
	case ResultRoleURI:
		return res.URI
	case ResultRoleTitle:
		return res.Title
	case ResultRoleSubtitle:
		return res.Subtitle
	case ResultRoleArt:
		return res.Art
	case ResultRoleCategoryID:
		return r.categoryID
	}
	return nil
}

func (r *Results) RoleNames() map[listmodel.Role]string { return resultRoleNames }
