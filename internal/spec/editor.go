package spec

import (
	"reflect"
	"slices"
	"strings"

	"github.com/01moynul/shop-backoffice/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxRows caps the size of the SKU table.
const MaxRows = 1000

// Bounds is the commission rate range allowed by the goods category, in percent.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultBounds applies until a goods category is chosen.
var DefaultBounds = Bounds{Min: 0, Max: 100}

// Clamp pulls v into [Min, Max].
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// RowPatch is a per-row edit. Nil fields are left alone.
type RowPatch struct {
	Image          *string  `json:"image"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice  *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	CommissionRate *float64 `json:"commissionRate"`
	Stock          *int     `json:"stock" validate:"omitempty,gte=0"`
	Limit          *int     `json:"limit" validate:"omitempty,gte=0"`
}

// Editor holds the spec list and SKU table of one goods form, the current
// row selection and the batch edit dialog state.
// It is not safe for concurrent use.
type Editor struct {
	groups    []models.Spec
	rows      []Row
	bounds    Bounds
	selected  map[string]struct{}
	batchOpen bool
}

// NewEditor starts an editor from an existing spec list and SKU table.
func NewEditor(groups []models.Spec, rows []Row, bounds Bounds) *Editor {
	if rows == nil {
		rows = []Row{}
	}
	return &Editor{
		groups:   cloneGroups(groups),
		rows:     cloneRows(rows),
		bounds:   bounds,
		selected: make(map[string]struct{}),
	}
}

func (e *Editor) Groups() []models.Spec { return cloneGroups(e.groups) }
func (e *Editor) Rows() []Row           { return cloneRows(e.rows) }
func (e *Editor) Bounds() Bounds        { return e.bounds }

// SetBounds changes the commission range used by later edits.
func (e *Editor) SetBounds(b Bounds) { e.bounds = b }

// Row looks a row up by identity.
func (e *Editor) Row(name string) (Row, bool) {
	i := e.indexOf(name)
	if i < 0 {
		return Row{}, false
	}
	return e.rows[i].clone(), true
}

func (e *Editor) AddGroup(name string) error {
	groups, rows, err := AddGroup(e.groups, e.rows, name)
	if err != nil {
		return err
	}
	e.replace(groups, rows)
	return nil
}

func (e *Editor) RenameGroup(index int, name string) error {
	groups, rows, err := RenameGroup(e.groups, e.rows, index, name)
	if err != nil {
		return err
	}
	e.groups, e.rows = groups, rows
	return nil
}

func (e *Editor) DeleteGroup(index int) error {
	groups, rows, err := DeleteGroup(e.groups, e.rows, index)
	if err != nil {
		return err
	}
	e.replace(groups, rows)
	return nil
}

// AddOption appends a value to the spec at index. Blank values are ignored.
func (e *Editor) AddOption(index int, value string) error {
	if err := checkIndex(e.groups, index); err != nil {
		return err
	}
	if isBlank(value) {
		return nil
	}
	if e.countAfterAdd(index) > MaxRows {
		return ErrTooManyRows
	}
	groups, rows, err := AddOptionValue(e.groups, e.rows, index, value)
	if err != nil {
		return err
	}
	e.replace(groups, rows)
	return nil
}

// RenameOption replaces the value at position option of the spec at index.
// The selection follows the renamed rows.
func (e *Editor) RenameOption(index, option int, value string) error {
	old, err := e.optionAt(index, option)
	if err != nil {
		return err
	}
	groups, rows, err := RenameOptionValue(e.groups, e.rows, index, old, value)
	if err != nil {
		return err
	}

	renamed := make(map[string]struct{}, len(e.selected))
	for i := range e.rows {
		if _, ok := e.selected[e.rows[i].Name]; ok {
			renamed[rows[i].Name] = struct{}{}
		}
	}
	e.groups, e.rows, e.selected = groups, rows, renamed
	return nil
}

func (e *Editor) DeleteOption(index, option int) error {
	old, err := e.optionAt(index, option)
	if err != nil {
		return err
	}
	groups, rows, err := DeleteOptionValue(e.groups, e.rows, index, old)
	if err != nil {
		return err
	}
	e.replace(groups, rows)
	return nil
}

// UpdateRow applies a per-row edit. Commission is clamped into the category
// bounds and money fields are rounded to cents.
func (e *Editor) UpdateRow(name string, p RowPatch) (Row, error) {
	i := e.indexOf(name)
	if i < 0 {
		return Row{}, ErrRowNotFound
	}
	if err := validateStruct(p); err != nil {
		return Row{}, err
	}

	r := e.rows[i].clone()
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Price != nil {
		r.Price = cents(*p.Price)
	}
	if p.OriginalPrice != nil {
		r.OriginalPrice = cents(*p.OriginalPrice)
	}
	if p.CommissionRate != nil {
		r.CommissionRate = cents(e.bounds.Clamp(*p.CommissionRate))
	}
	if p.Stock != nil {
		r.Stock = *p.Stock
	}
	if p.Limit != nil {
		r.Limit = *p.Limit
	}

	rows := slices.Clone(e.rows)
	rows[i] = r
	e.rows = rows
	return r.clone(), nil
}

// SetImage stores an uploaded image URL on a row.
func (e *Editor) SetImage(name, url string) (Row, error) {
	return e.UpdateRow(name, RowPatch{Image: &url})
}

// replace installs the result of a structural change, which always drops the selection.
func (e *Editor) replace(groups []models.Spec, rows []Row) {
	e.groups, e.rows = groups, rows
	e.selected = make(map[string]struct{})
}

func (e *Editor) optionAt(index, option int) (string, error) {
	if err := checkIndex(e.groups, index); err != nil {
		return "", err
	}
	opts := e.groups[index].Options
	if option < 0 || option >= len(opts) {
		return "", ErrOptionNotFound
	}
	return opts[option], nil
}

func (e *Editor) indexOf(name string) int {
	return slices.IndexFunc(e.rows, func(r Row) bool { return r.Name == name })
}

// countAfterAdd is the table size once the spec at index gains one more value.
func (e *Editor) countAfterAdd(index int) int {
	n, cur := len(e.groups[index].Options), Count(e.groups)
	switch {
	case n == 0 && cur == 0:
		return 1
	case n == 0:
		return cur
	default:
		return cur / n * (n + 1)
	}
}

func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "gte":
			fields[fe.Field()] = fe.Field() + " must not be less than " + fe.Param()
		default:
			fields[fe.Field()] = fe.Field() + " is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}
