package listview

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// CriterionDef declares a discrete filter a page offers. Values lists the
// choices a renderer may cycle through; it does not restrict SetCriterion.
type CriterionDef struct {
	Name   string
	Field  string
	Values []string
}

// Options configures a Controller for one list page.
type Options struct {
	// IDField names the record identifier field (default "id").
	IDField string

	// SearchFields are tested by the free-text search.
	SearchFields []SearchField

	// Criteria are the discrete filters, all inactive initially.
	Criteria []CriterionDef

	// PageSize is the initial page size (default DefaultPageSize).
	PageSize int

	// PageSizes are the allowed page sizes (default DefaultPageSizes).
	PageSizes []int

	// Resolver resolves foreign fields; one is created when nil.
	Resolver *Resolver
}

// View is everything a page renders. It is recomputed from the controller
// state on every call and shares no mutable state with it.
type View struct {
	VisibleRecords     []types.Record
	VisibleIDs         []string
	TotalFiltered      int
	TotalPages         int
	Page               int
	PageSize           int
	Selected           []string
	AllVisibleSelected bool
	SearchTerm         string
	Criteria           []types.Criterion
}

// Controller owns the authoritative record collection of one list page and
// the user's search, criteria, paging, and selection inputs.
type Controller struct {
	idField      string
	searchFields []SearchField
	defs         []CriterionDef
	pageSizes    []int
	refs         *Resolver

	records  []types.Record
	term     string
	criteria []types.Criterion
	page     int
	pageSize int
	selected Selection
}

// New creates a Controller with an empty collection on page 1.
func New(opts Options) *Controller {
	c := &Controller{
		idField:      opts.IDField,
		searchFields: append([]SearchField(nil), opts.SearchFields...),
		pageSizes:    slices.Clone(opts.PageSizes),
		refs:         opts.Resolver,
		records:      []types.Record{},
		page:         1,
		pageSize:     opts.PageSize,
	}
	if c.idField == "" {
		c.idField = types.DefaultIDField
	}
	if len(c.pageSizes) == 0 {
		c.pageSizes = slices.Clone(DefaultPageSizes)
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if !slices.Contains(c.pageSizes, c.pageSize) {
		c.pageSizes = append(c.pageSizes, c.pageSize)
		slices.Sort(c.pageSizes)
	}
	if c.refs == nil {
		c.refs = NewResolver(DefaultLabelCacheSize)
	}
	for _, d := range opts.Criteria {
		if d.Name == "" {
			d.Name = d.Field
		}
		d.Values = slices.Clone(d.Values)
		c.defs = append(c.defs, d)
		c.criteria = append(c.criteria, types.Criterion{Name: d.Name, Field: d.Field})
	}
	return c
}

// SetRecords replaces the authoritative collection. A malformed payload is
// treated as empty. Selections of records that disappeared are pruned and
// the page index is clamped.
func (c *Controller) SetRecords(payload any) {
	c.records = Normalize(payload)

	present := make(map[string]struct{}, len(c.records))
	for _, r := range c.records {
		if id, ok := r.ID(c.idField); ok {
			present[id] = struct{}{}
		}
	}
	c.selected = c.selected.Prune(func(id string) bool {
		_, ok := present[id]
		return ok
	})
	c.page = ClampPage(c.page, c.totalPages())
}

// SetReferenceCollection replaces the named reference collection used to
// resolve foreign fields. New labels can change what the search matches, so
// the page index is clamped.
func (c *Controller) SetReferenceCollection(name string, payload any) {
	c.refs.SetCollection(name, payload)
	c.page = ClampPage(c.page, c.totalPages())
}

// SetSearchTerm updates the free-text search and returns to page 1.
func (c *Controller) SetSearchTerm(term string) {
	c.term = term
	c.page = 1
}

// SetCriterion sets the value of the named criterion and returns to page 1.
// An empty value or types.AllValue clears the constraint.
func (c *Controller) SetCriterion(name, value string) error {
	for i := range c.criteria {
		if c.criteria[i].Name == name {
			c.criteria[i].Value = value
			c.page = 1
			return nil
		}
	}
	return fmt.Errorf("set criterion %q: %w", name, types.ErrUnknownCriterion)
}

// ClearFilters resets the search term and every criterion.
func (c *Controller) ClearFilters() {
	c.term = ""
	for i := range c.criteria {
		c.criteria[i].Value = ""
	}
	c.page = 1
}

// SetPage moves to page n, clamped into the valid range.
func (c *Controller) SetPage(n int) {
	c.page = ClampPage(n, c.totalPages())
}

// NextPage moves forward one page, staying in range.
func (c *Controller) NextPage() { c.SetPage(c.page + 1) }

// PrevPage moves back one page.
func (c *Controller) PrevPage() { c.SetPage(c.page - 1) }

// SetPageSize changes the page size, keeping the current page number and
// clamping it to the new page count. Sizes outside the allowed set are
// rejected with types.ErrInvalidPageSize.
func (c *Controller) SetPageSize(n int) error {
	if !slices.Contains(c.pageSizes, n) {
		return fmt.Errorf("set page size %d (allowed %v): %w", n, c.pageSizes, types.ErrInvalidPageSize)
	}
	c.pageSize = n
	c.page = ClampPage(c.page, c.totalPages())
	return nil
}

// ToggleSelectOne selects or unselects a single record identifier.
// Identifiers absent from the collection are never selected.
func (c *Controller) ToggleSelectOne(id string) {
	if !c.selected.Has(id) && !c.hasRecord(id) {
		return
	}
	c.selected = c.selected.ToggleOne(id)
}

func (c *Controller) hasRecord(id string) bool {
	return slices.ContainsFunc(c.records, func(r types.Record) bool {
		rid, ok := r.ID(c.idField)
		return ok && rid == id
	})
}

// ToggleSelectAllVisible toggles the header checkbox for the visible page.
func (c *Controller) ToggleSelectAllVisible() {
	c.selected = c.selected.ToggleAllVisible(c.View().VisibleIDs)
}

// ClearSelection unselects everything.
func (c *Controller) ClearSelection() {
	c.selected = Selection{}
}

// Label resolves a foreign identifier against the named reference collection.
func (c *Controller) Label(ref string, id any) string {
	return c.refs.Label(ref, id)
}

// IDField returns the identifier field of the records.
func (c *Controller) IDField() string { return c.idField }

// PageSizes returns the allowed page sizes.
func (c *Controller) PageSizes() []int { return slices.Clone(c.pageSizes) }

// CriterionDefs returns the declared criteria.
func (c *Controller) CriterionDefs() []CriterionDef {
	out := make([]CriterionDef, len(c.defs))
	for i, d := range c.defs {
		d.Values = slices.Clone(d.Values)
		out[i] = d
	}
	return out
}

// Records returns a copy of the authoritative collection.
func (c *Controller) Records() []types.Record {
	return slices.Clone(c.records)
}

// Selected returns the records whose identifiers are selected, in
// collection order.
func (c *Controller) Selected() []types.Record {
	var out []types.Record
	for _, r := range c.records {
		if id, ok := r.ID(c.idField); ok && c.selected.Has(id) {
			out = append(out, r)
		}
	}
	return out
}

// View computes the current page. It is a pure function of the controller
// state: two calls without an intervening setter return equal views.
func (c *Controller) View() View {
	filtered := c.filtered()
	p := Paginate(filtered, c.pageSize, c.page)

	visible := make([]types.Record, len(p.Items))
	copy(visible, p.Items)
	ids := make([]string, 0, len(visible))
	for _, r := range visible {
		if id, ok := r.ID(c.idField); ok {
			ids = append(ids, id)
		}
	}

	return View{
		VisibleRecords:     visible,
		VisibleIDs:         ids,
		TotalFiltered:      len(filtered),
		TotalPages:         p.TotalPages,
		Page:               p.Page,
		PageSize:           c.pageSize,
		Selected:           c.selected.IDs(),
		AllVisibleSelected: c.selected.AllVisibleSelected(ids),
		SearchTerm:         c.term,
		Criteria:           slices.Clone(c.criteria),
	}
}

func (c *Controller) filtered() []types.Record {
	return Filter(c.records, BuildPredicate(c.term, c.searchFields, c.criteria, c.refs))
}

func (c *Controller) totalPages() int {
	return TotalPages(len(c.filtered()), c.pageSize)
}
