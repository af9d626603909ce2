package spec

import "slices"

// BatchPatch is applied to every selected row. Nil fields are left alone.
type BatchPatch struct {
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice  *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	CommissionRate *float64 `json:"commissionRate"`
	Stock          *int     `json:"stock" validate:"omitempty,gte=0"`
	Limit          *int     `json:"limit" validate:"omitempty,gte=0"`
}

// Selected returns the selected identities in table order.
func (e *Editor) Selected() []string {
	names := make([]string, 0, len(e.selected))
	for _, r := range e.rows {
		if _, ok := e.selected[r.Name]; ok {
			names = append(names, r.Name)
		}
	}
	return names
}

func (e *Editor) IsSelected(name string) bool {
	_, ok := e.selected[name]
	return ok
}

// SelectAll selects every row, or clears the selection when every row is
// already selected.
func (e *Editor) SelectAll() {
	if len(e.selected) == len(e.rows) {
		e.selected = make(map[string]struct{})
		return
	}
	e.selected = make(map[string]struct{}, len(e.rows))
	for _, r := range e.rows {
		e.selected[r.Name] = struct{}{}
	}
}

// ToggleRow flips one row in or out of the selection and reports whether it
// is selected afterwards.
func (e *Editor) ToggleRow(name string) (bool, error) {
	if e.indexOf(name) < 0 {
		return false, ErrRowNotFound
	}
	if _, ok := e.selected[name]; ok {
		delete(e.selected, name)
		return false, nil
	}
	e.selected[name] = struct{}{}
	return true, nil
}

func (e *Editor) BatchOpen() bool { return e.batchOpen }

// OpenBatchEdit opens the batch dialog. It refuses while nothing is selected.
func (e *Editor) OpenBatchEdit() error {
	if len(e.selected) == 0 {
		return ErrEmptySelection
	}
	e.batchOpen = true
	return nil
}

func (e *Editor) CancelBatchEdit() { e.batchOpen = false }

// ApplyBatchEdit writes p into every selected row and returns how many rows
// changed. The patch is validated as a whole first; nothing is written when
// any field is invalid. On success the dialog closes and the selection clears.
func (e *Editor) ApplyBatchEdit(p BatchPatch) (int, error) {
	if !e.batchOpen {
		return 0, ErrBatchClosed
	}
	if len(e.selected) == 0 {
		return 0, ErrEmptySelection
	}
	if err := validateStruct(p); err != nil {
		return 0, err
	}

	rows := slices.Clone(e.rows)
	n := 0
	for i := range rows {
		if _, ok := e.selected[rows[i].Name]; !ok {
			continue
		}
		if p.Price != nil {
			rows[i].Price = cents(*p.Price)
		}
		if p.OriginalPrice != nil {
			rows[i].OriginalPrice = cents(*p.OriginalPrice)
		}
		if p.CommissionRate != nil {
			rows[i].CommissionRate = cents(e.bounds.Clamp(*p.CommissionRate))
		}
		if p.Stock != nil {
			rows[i].Stock = *p.Stock
		}
		if p.Limit != nil {
			rows[i].Limit = *p.Limit
		}
		n++
	}

	e.rows = rows
	e.batchOpen = false
	e.selected = make(map[string]struct{})
	return n, nil
}
