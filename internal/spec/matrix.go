// Package spec builds and maintains the SKU table of a goods record: the
// Cartesian product of its option groups ("specs"), keyed by the comma-joined
// identity of each combination.
package spec

import (
	"slices"
	"strings"

	"github.com/01moynul/shop-backoffice/internal/models"
)

// Separator joins option values into a SKU identity. Option values may not contain it.
const Separator = ","

// Attr is the value a row holds for one spec.
type Attr struct {
	Spec  string `json:"spec"`
	Value string `json:"value"`
}

// Row is one SKU of the editing table.
type Row struct {
	Name           string  `json:"name"`
	Values         []Attr  `json:"values"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"originalPrice"`
	CommissionRate float64 `json:"commissionRate"`
	Stock          int     `json:"stock"`
	Limit          int     `json:"limit"`
}

func newRow(values []Attr) Row {
	return Row{Name: identity(values), Values: values}
}

// PerSpecValue maps each spec name to the value this row holds for it.
func (r Row) PerSpecValue() map[string]string {
	m := make(map[string]string, len(r.Values))
	for _, a := range r.Values {
		m[a.Spec] = a.Value
	}
	return m
}

// Sku projects the row onto the persisted SKU shape.
func (r Row) Sku() models.Sku {
	return models.Sku{
		Name:           r.Name,
		Image:          r.Image,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		CommissionRate: r.CommissionRate,
		Stock:          r.Stock,
		Limit:          r.Limit,
	}
}

func (r Row) clone() Row {
	r.Values = slices.Clone(r.Values)
	return r
}

func (r *Row) carry(old Row) {
	r.Image = old.Image
	r.Price = old.Price
	r.OriginalPrice = old.OriginalPrice
	r.CommissionRate = old.CommissionRate
	r.Stock = old.Stock
	r.Limit = old.Limit
}

func identity(values []Attr) string {
	parts := make([]string, len(values))
	for i, a := range values {
		parts[i] = a.Value
	}
	return strings.Join(parts, Separator)
}

// Rebuild returns the full product of groups' options. A row of previous whose
// identity is still produced keeps all of its fields; other new rows start zeroed.
// Specs without options take no part in the product. When no spec has options
// the result is empty.
func Rebuild(groups []models.Spec, previous []Row) []Row {
	if len(groups) == 0 {
		return []Row{}
	}

	combos := [][]Attr{nil}
	dims := 0
	for _, g := range groups {
		if len(g.Options) == 0 {
			continue
		}
		dims++
		next := make([][]Attr, 0, len(combos)*len(g.Options))
		for _, c := range combos {
			for _, v := range g.Options {
				values := make([]Attr, len(c), len(c)+1)
				copy(values, c)
				next = append(next, append(values, Attr{Spec: g.Name, Value: v}))
			}
		}
		combos = next
	}
	if dims == 0 {
		return []Row{}
	}

	byName := make(map[string]Row, len(previous))
	for _, r := range previous {
		if _, ok := byName[r.Name]; !ok {
			byName[r.Name] = r
		}
	}

	rows := make([]Row, 0, len(combos))
	for _, values := range combos {
		row := newRow(values)
		if old, ok := byName[row.Name]; ok {
			row.carry(old)
		}
		rows = append(rows, row)
	}
	return rows
}

// Count is the number of rows Rebuild would produce for groups.
func Count(groups []models.Spec) int {
	n, dims := 1, 0
	for _, g := range groups {
		if len(g.Options) == 0 {
			continue
		}
		dims++
		n *= len(g.Options)
	}
	if dims == 0 {
		return 0
	}
	return n
}

// AddGroup appends an empty spec named name.
func AddGroup(groups []models.Spec, rows []Row, name string) ([]models.Spec, []Row, error) {
	if isBlank(name) {
		return groups, rows, ErrBlankGroupName
	}
	next := cloneGroups(groups)
	next = append(next, models.Spec{Name: name, Options: []string{}})
	return next, Rebuild(next, rows), nil
}

// RenameGroup changes a spec's name and relabels the rows in place.
func RenameGroup(groups []models.Spec, rows []Row, index int, name string) ([]models.Spec, []Row, error) {
	if err := checkIndex(groups, index); err != nil {
		return groups, rows, err
	}
	if isBlank(name) {
		return groups, rows, ErrBlankGroupName
	}

	next := cloneGroups(groups)
	next[index].Name = name

	slot, ok := slotOf(groups, index)
	out := cloneRows(rows)
	if ok {
		for i := range out {
			if slot < len(out[i].Values) {
				out[i].Values[slot].Spec = name
			}
		}
	}
	return next, out, nil
}

// DeleteGroup removes a spec and rebuilds the product over the rest.
func DeleteGroup(groups []models.Spec, rows []Row, index int) ([]models.Spec, []Row, error) {
	if err := checkIndex(groups, index); err != nil {
		return groups, rows, err
	}
	next := cloneGroups(groups)
	next = slices.Delete(next, index, index+1)
	return next, Rebuild(next, rows), nil
}

// AddOptionValue appends value to a spec and rebuilds. A blank value is a no-op.
func AddOptionValue(groups []models.Spec, rows []Row, index int, value string) ([]models.Spec, []Row, error) {
	if err := checkIndex(groups, index); err != nil {
		return groups, rows, err
	}
	if isBlank(value) {
		return groups, rows, nil
	}
	if err := checkValue(groups[index], value); err != nil {
		return groups, rows, err
	}
	next := cloneGroups(groups)
	next[index].Options = append(next[index].Options, value)
	return next, Rebuild(next, rows), nil
}

// RenameOptionValue replaces oldValue with newValue in one spec and rewrites the
// identity of every row holding oldValue for that spec. Other rows are untouched
// and no rebuild happens. A blank newValue is a no-op.
func RenameOptionValue(groups []models.Spec, rows []Row, index int, oldValue, newValue string) ([]models.Spec, []Row, error) {
	if err := checkIndex(groups, index); err != nil {
		return groups, rows, err
	}
	pos := slices.Index(groups[index].Options, oldValue)
	if pos < 0 {
		return groups, rows, ErrOptionNotFound
	}
	if isBlank(newValue) || newValue == oldValue {
		return groups, rows, nil
	}
	if err := checkValue(groups[index], newValue); err != nil {
		return groups, rows, err
	}

	next := cloneGroups(groups)
	next[index].Options[pos] = newValue

	slot, _ := slotOf(groups, index)
	out := cloneRows(rows)
	for i := range out {
		if slot < len(out[i].Values) && out[i].Values[slot].Value == oldValue {
			out[i].Values[slot].Value = newValue
			out[i].Values[slot].Spec = next[index].Name
			out[i].Name = identity(out[i].Values)
		}
	}
	return next, out, nil
}

// DeleteOptionValue removes value from a spec and rebuilds.
func DeleteOptionValue(groups []models.Spec, rows []Row, index int, value string) ([]models.Spec, []Row, error) {
	if err := checkIndex(groups, index); err != nil {
		return groups, rows, err
	}
	pos := slices.Index(groups[index].Options, value)
	if pos < 0 {
		return groups, rows, ErrOptionNotFound
	}
	next := cloneGroups(groups)
	next[index].Options = slices.Delete(next[index].Options, pos, pos+1)
	return next, Rebuild(next, rows), nil
}

// ToSkus projects rows onto the persisted SKU list.
func ToSkus(rows []Row) []models.Sku {
	skus := make([]models.Sku, len(rows))
	for i, r := range rows {
		skus[i] = r.Sku()
	}
	return skus
}

// FromSkus is the inverse of ToSkus: each SKU name is split on Separator and the
// parts are matched, in order, to the specs that have options.
func FromSkus(groups []models.Spec, skus []models.Sku) []Row {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g.Options) > 0 {
			names = append(names, g.Name)
		}
	}

	rows := make([]Row, len(skus))
	for i, s := range skus {
		parts := strings.Split(s.Name, Separator)
		values := make([]Attr, len(parts))
		for j, p := range parts {
			values[j].Value = p
			if j < len(names) {
				values[j].Spec = names[j]
			}
		}
		rows[i] = Row{
			Name:           s.Name,
			Values:         values,
			Image:          s.Image,
			Price:          s.Price,
			OriginalPrice:  s.OriginalPrice,
			CommissionRate: s.CommissionRate,
			Stock:          s.Stock,
			Limit:          s.Limit,
		}
	}
	return rows
}

// slotOf is the position of groups[index] inside a row's Values.
func slotOf(groups []models.Spec, index int) (int, bool) {
	slot := 0
	for i := 0; i < index; i++ {
		if len(groups[i].Options) > 0 {
			slot++
		}
	}
	return slot, len(groups[index].Options) > 0
}

func checkIndex(groups []models.Spec, index int) error {
	if index < 0 || index >= len(groups) {
		return ErrGroupIndex
	}
	return nil
}

func checkValue(g models.Spec, value string) error {
	if strings.Contains(value, Separator) {
		return ErrInvalidOptionValue
	}
	if slices.Contains(g.Options, value) {
		return ErrDuplicateOptionValue
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func cloneGroups(groups []models.Spec) []models.Spec {
	out := make([]models.Spec, len(groups))
	for i, g := range groups {
		out[i] = models.Spec{Name: g.Name, Options: slices.Clone(g.Options)}
		if out[i].Options == nil {
			out[i].Options = []string{}
		}
	}
	return out
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.clone()
	}
	return out
}
