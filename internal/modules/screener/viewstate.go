package screener

// ViewState is the serializable table state a client holds between
// requests: active filters, sort and page. Transitions return a new
// state; the receiver is never mutated.
type ViewState struct {
	Filters *FilterSet
	Sort    *SortSpec
	Page    int
}

// NewViewState returns the initial state: no filters, no sort, page 1.
func NewViewState() ViewState {
	return ViewState{Page: 1}
}

// WithFilters replaces the filter set and rewinds to page 1, since the
// old page number is meaningless against a new match set.
func (v ViewState) WithFilters(f *FilterSet) ViewState {
	v.Filters = f
	v.Page = 1
	return v
}

// UpdateFilter adds or overwrites the single constraint for the
// constraint's field and rewinds to page 1. Other fields keep their
// constraints.
func (v ViewState) UpdateFilter(c Constraint) (ViewState, error) {
	f, err := v.Filters.WithConstraint(c)
	if err != nil {
		return v, err
	}
	v.Filters = f
	v.Page = 1
	return v, nil
}

// RemoveFilter drops the constraint for one field and rewinds to
// page 1.
func (v ViewState) RemoveFilter(key Field) ViewState {
	v.Filters = v.Filters.WithoutField(key)
	v.Page = 1
	return v
}

// ClearFilters drops all filters and rewinds to page 1. The sort is
// kept.
func (v ViewState) ClearFilters() ViewState {
	v.Filters = nil
	v.Page = 1
	return v
}

// ToggleSort activates sorting on key. Re-toggling the active key flips
// its direction; a new key starts Descending. Either way the view
// rewinds to page 1.
func (v ViewState) ToggleSort(key Field) ViewState {
	if v.Sort != nil && v.Sort.Key == key {
		v.Sort = &SortSpec{Key: key, Direction: v.Sort.Direction.Toggle()}
	} else {
		v.Sort = &SortSpec{Key: key, Direction: Descending}
	}
	v.Page = 1
	return v
}

// WithPage moves to the given 1-based page. Non-positive pages clamp
// to 1.
func (v ViewState) WithPage(page int) ViewState {
	if page < 1 {
		page = 1
	}
	v.Page = page
	return v
}

// Request converts the state into a screening request.
func (v ViewState) Request(pageSize int) Request {
	return Request{
		Filters:  v.Filters,
		Sort:     v.Sort,
		Page:     v.Page,
		PageSize: pageSize,
	}
}
