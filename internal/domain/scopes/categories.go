package scopes

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/monitoring"
)

// ErrUnsupported marks operations this model deliberately does not provide.
// It signals an integration error, not bad input.
var ErrUnsupported = errors.New("operation not supported")

// Category roles.
const (
	RoleCategoryID listmodel.Role = iota + 1
	RoleName
	RoleIcon
	RoleRawRendererTemplate
	RoleRenderer
	RoleComponents
	RoleResults
	RoleCount
)

var categoryRoleNames = map[listmodel.Role]string{
	RoleCategoryID:          "categoryId",
	RoleName:                "name",
	RoleIcon:                "icon",
	RoleRawRendererTemplate: "rawRendererTemplate",
	RoleRenderer:            "renderer",
	RoleComponents:          "components",
	RoleResults:             "results",
	RoleCount:               "count",
}

// DefaultResultsPerCategory is the result count of synthesized categories.
const DefaultResultsPerCategory = 15

// CategoryInfo is the read-only description of a category row.
type CategoryInfo struct {
	ID          string `json:"categoryId"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	RawTemplate string `json:"rawRendererTemplate"`
	Special     bool   `json:"special"`
	Row         int    `json:"row"`
}

// ResultsProvider builds the results of a category on first access.
type ResultsProvider func(info CategoryInfo) []Result

// SyntheticProvider gives every synthesized category n results and special
// categories none.
func SyntheticProvider(n int) ResultsProvider {
	return func(info CategoryInfo) []Result {
		if info.Special {
			return nil
		}
		return SyntheticResults(info.ID, n)
	}
}

type category struct {
	id           string
	name         string
	icon         string
	rawTemplate  string
	special      bool
	countSource  CountSource
	registration Registration
}

func (c *category) release() {
	if c.registration != nil {
		c.registration.Revoke()
		c.registration = nil
	}
}

// Categories is the category list with its lazily built results.
type Categories struct {
	listmodel.Notifier
	rows     *listmodel.List[*category]
	cache    map[int]*Results
	provider ResultsProvider
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

var _ listmodel.Model = (*Categories)(nil)

// NewCategories returns n synthesized categories with ids "0".."n-1".
func NewCategories(n int) *Categories {
	c := &Categories{
		cache:    make(map[int]*Results),
		provider: SyntheticProvider(DefaultResultsPerCategory),
		logger:   zap.NewNop(),
	}
	c.rows = listmodel.NewList[*category](&c.Notifier)
	// First subscriber: the cache is empty before anyone else sees the end
	// of a structural change.
	c.Subscribe(listmodel.Funcs{OnEnd: func(listmodel.Change) { c.invalidate() }})
	c.rows.Reset(synthesize(n))
	return c
}

func synthesize(n int) []*category {
	n = max(n, 0)
	rows := make([]*category, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &category{
			id:   fmt.Sprintf("%d", i),
			name: fmt.Sprintf("Category %d", i),
			icon: "gtk-apply",
		})
	}
	return rows
}

// WithProvider replaces the results provider.
func (c *Categories) WithProvider(p ResultsProvider) *Categories {
	c.provider = p
	return c
}

// WithLogger sets the logger.
func (c *Categories) WithLogger(logger *zap.Logger) *Categories {
	c.logger = logger.Named("categories")
	return c
}

// WithMetrics adds metrics tracking.
func (c *Categories) WithMetrics(metrics *monitoring.Metrics) *Categories {
	c.metrics = metrics
	return c
}

func (c *Categories) invalidate() {
	if len(c.cache) == 0 {
		return
	}
	c.logger.Debug("Dropping cached results", zap.Int("entries", len(c.cache)))
	c.cache = make(map[int]*Results)
}

func (c *Categories) Len() int { return c.rows.Len() }

func (c *Categories) RoleNames() map[listmodel.Role]string { return categoryRoleNames }

// Info describes the category at row.
func (c *Categories) Info(row int) (CategoryInfo, bool) {
	cat, ok := c.rows.At(row)
	if !ok {
		return CategoryInfo{}, false
	}
	return info(cat, row), true
}

func info(cat *category, row int) CategoryInfo {
	return CategoryInfo{
		ID:          cat.id,
		Name:        cat.name,
		Icon:        cat.icon,
		RawTemplate: cat.rawTemplate,
		Special:     cat.special,
		Row:         row,
	}
}

// Find returns the row of categoryID, or -1.
func (c *Categories) Find(categoryID string) int {
	return c.rows.IndexFunc(func(cat *category) bool { return cat.id == categoryID })
}

// Cached reports whether row currently holds built results.
func (c *Categories) Cached(row int) bool {
	_, ok := c.cache[row]
	return ok
}

// Results returns the results of row, building and memoizing them on first
// access. It returns nil for an invalid row.
func (c *Categories) Results(row int) *Results {
	cat, ok := c.rows.At(row)
	if !ok {
		return nil
	}
	if r, ok := c.cache[row]; ok {
		return r
	}
	r := NewResults(cat.id, c.provider(info(cat, row)))
	c.cache[row] = r
	c.metrics.RecordResultsBuilt(cat.id)
	c.logger.Debug("Built results", zap.String("category_id", cat.id), zap.Int("row", row), zap.Int("count", r.Count()))
	return r
}

// Refresh drops the memoized results of row so the next access rebuilds
// them, and reports the results and count roles as changed.
func (c *Categories) Refresh(row int) error {
	if _, ok := c.rows.At(row); !ok {
		return fmt.Errorf("refresh category: %w", listmodel.ErrInvalidIndex)
	}
	delete(c.cache, row)
	c.NotifyDataChanged(row, row, RoleResults, RoleCount)
	return nil
}

func (c *Categories) Data(row int, role listmodel.Role) listmodel.Value {
	cat, ok := c.rows.At(row)
	if !ok {
		return nil
	}
	switch role {
	case RoleCategoryID:
		return cat.id
	case RoleName:
		return cat.name
	case RoleIcon:
		return cat.icon
	case RoleRawRendererTemplate:
		return cat.rawTemplate
	case RoleRenderer:
		return Renderer(row)
	case RoleComponents:
		return Components()
	case RoleResults:
		return c.Results(row)
	case RoleCount:
		if cat.countSource != nil {
			return cat.countSource.Count()
		}
		return c.Results(row).Count()
	}
	return nil
}

// AddSpecialCategory inserts a category at row 0. A non-nil countSource
// drives the row's count role.
func (c *Categories) AddSpecialCategory(categoryID, name, icon, rawTemplate string, countSource CountSource) error {
	cat := &category{
		id:          categoryID,
		name:        name,
		icon:        icon,
		rawTemplate: rawTemplate,
		special:     true,
		countSource: countSource,
	}
	if err := c.rows.Insert(0, cat); err != nil {
		return fmt.Errorf("add special category %q: %w", categoryID, err)
	}
	if countSource != nil {
		cat.registration = countSource.OnCountChanged(func() { c.countChanged(cat) })
	}
	c.logger.Info("Added special category", zap.String("category_id", categoryID), zap.Bool("counted", countSource != nil))
	return nil
}

// countChanged locates the row by the category record that owns the
// registration; the row may have moved since it subscribed.
func (c *Categories) countChanged(cat *category) {
	row := c.rows.IndexFunc(func(o *category) bool { return o == cat })
	if row < 0 {
		return
	}
	c.NotifyDataChanged(row, row, RoleCount)
}

// RemoveCategory removes the category at row and detaches its count source.
func (c *Categories) RemoveCategory(row int) error {
	cat, err := c.rows.Remove(row)
	if err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	cat.release()
	return nil
}

// Reset replaces every category with n synthesized ones.
func (c *Categories) Reset(n int) error {
	old := c.rows.Items()
	if err := c.rows.Reset(synthesize(n)); err != nil {
		return fmt.Errorf("reset categories: %w", err)
	}
	for _, cat := range old {
		cat.release()
	}
	return nil
}

// OverrideCategoryJSON is not provided by this model and always fails with
// ErrUnsupported.
func (c *Categories) OverrideCategoryJSON(categoryID, json string) error {
	c.logger.Error("OverrideCategoryJSON is not implemented", zap.String("category_id", categoryID))
	return fmt.Errorf("override category %q json: %w", categoryID, ErrUnsupported)
}
