package spec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/01moynul/shop-backoffice/internal/models"
)

func ptr[T any](v T) *T { return &v }

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	groups := []models.Spec{
		{Name: "Color", Options: []string{"Red", "Blue"}},
		{Name: "Size", Options: []string{"S", "M", "L"}},
	}
	return NewEditor(groups, Rebuild(groups, nil), Bounds{Min: 0, Max: 20})
}

func TestEditorStructuralChangesClearSelection(t *testing.T) {
	steps := []struct {
		name string
		run  func(e *Editor) error
	}{
		{"add spec", func(e *Editor) error { return e.AddGroup("Material") }},
		{"delete spec", func(e *Editor) error { return e.DeleteGroup(1) }},
		{"add value", func(e *Editor) error { return e.AddOption(0, "Green") }},
		{"delete value", func(e *Editor) error { return e.DeleteOption(1, 0) }},
	}

	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t)
			e.SelectAll()
			if len(e.Selected()) != 6 {
				t.Fatalf("expected 6 selected, got %d", len(e.Selected()))
			}
			if err := tt.run(e); err != nil {
				t.Fatalf("step returned error: %v", err)
			}
			if n := len(e.Selected()); n != 0 {
				t.Fatalf("selection must be cleared, %d rows still selected", n)
			}
		})
	}
}

func TestEditorBlankInputs(t *testing.T) {
	e := newTestEditor(t)
	e.SelectAll()

	if err := e.AddGroup(""); !errors.Is(err, ErrBlankGroupName) {
		t.Fatalf("expected ErrBlankGroupName, got %v", err)
	}
	if err := e.AddOption(0, " "); err != nil {
		t.Fatalf("blank value must be ignored, got %v", err)
	}
	if len(e.Groups()) != 2 || len(e.Groups()[0].Options) != 2 {
		t.Fatalf("state changed by rejected input: %v", e.Groups())
	}
	if len(e.Selected()) != 6 {
		t.Fatal("rejected input must not touch the selection")
	}
}

func TestEditorRenameKeepsSelection(t *testing.T) {
	e := newTestEditor(t)
	if _, err := e.ToggleRow("Red,S"); err != nil {
		t.Fatalf("ToggleRow returned error: %v", err)
	}
	if _, err := e.ToggleRow("Blue,M"); err != nil {
		t.Fatalf("ToggleRow returned error: %v", err)
	}

	if err := e.RenameOption(0, 0, "Crimson"); err != nil {
		t.Fatalf("RenameOption returned error: %v", err)
	}

	want := []string{"Crimson,S", "Blue,M"}
	if got := e.Selected(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if _, ok := e.Row("Red,S"); ok {
		t.Fatal("old identity still present")
	}
}

func TestEditorAddOptionLimit(t *testing.T) {
	values := make([]string, MaxRows)
	for i := range values {
		values[i] = string(rune('a'+i%26)) + string(rune('0'+i/26%10)) + string(rune('A'+i/260))
	}
	groups := []models.Spec{{Name: "Code", Options: values}}
	e := NewEditor(groups, Rebuild(groups, nil), Bounds{})

	if err := e.AddOption(0, "overflow"); !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("expected ErrTooManyRows, got %v", err)
	}
}

func TestEditorUpdateRow(t *testing.T) {
	e := newTestEditor(t)

	row, err := e.UpdateRow("Blue,L", RowPatch{
		Price:          ptr(12.345),
		CommissionRate: ptr(35.0),
		Stock:          ptr(9),
	})
	if err != nil {
		t.Fatalf("UpdateRow returned error: %v", err)
	}
	if row.Price != 12.35 {
		t.Fatalf("price not rounded to cents: %v", row.Price)
	}
	if row.CommissionRate != 20 {
		t.Fatalf("commission not clamped: %v", row.CommissionRate)
	}
	if row.Stock != 9 || row.Limit != 0 {
		t.Fatalf("unexpected row: %+v", row)
	}

	_, err = e.UpdateRow("Blue,L", RowPatch{Stock: ptr(-1)})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["stock"]; !ok {
		t.Fatalf("expected stock field error, got %v", verr.Fields)
	}
	if got, _ := e.Row("Blue,L"); got.Stock != 9 {
		t.Fatalf("rejected edit must not apply, stock = %d", got.Stock)
	}

	if _, err := e.UpdateRow("Green,L", RowPatch{Stock: ptr(1)}); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}

	if _, err := e.SetImage("Red,S", "https://cdn.example.com/a.png"); err != nil {
		t.Fatalf("SetImage returned error: %v", err)
	}
	if got, _ := e.Row("Red,S"); got.Image != "https://cdn.example.com/a.png" {
		t.Fatalf("image not stored: %+v", got)
	}
}

func TestSelectAllToggles(t *testing.T) {
	e := newTestEditor(t)
	e.SelectAll()
	if len(e.Selected()) != 6 {
		t.Fatalf("expected all selected, got %d", len(e.Selected()))
	}
	e.SelectAll()
	if len(e.Selected()) != 0 {
		t.Fatalf("second SelectAll must clear, got %d", len(e.Selected()))
	}

	selected, err := e.ToggleRow("Red,M")
	if err != nil || !selected {
		t.Fatalf("ToggleRow = %v, %v", selected, err)
	}
	e.SelectAll()
	if len(e.Selected()) != 6 {
		t.Fatal("partial selection must become full selection")
	}
	if _, err := e.ToggleRow("nope"); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestBatchEditScopesToSelection(t *testing.T) {
	groups := []models.Spec{{Name: "Size", Options: []string{"XS", "S", "M", "L", "XL"}}}
	rows := Rebuild(groups, nil)
	for i := range rows {
		rows[i].Stock = 100 + i
		rows[i].Limit = 3
	}
	e := NewEditor(groups, rows, Bounds{Min: 0, Max: 20})
	before := e.Rows()

	e.ToggleRow("S")
	e.ToggleRow("L")
	if err := e.OpenBatchEdit(); err != nil {
		t.Fatalf("OpenBatchEdit returned error: %v", err)
	}

	n, err := e.ApplyBatchEdit(BatchPatch{Price: ptr(10.0)})
	if err != nil {
		t.Fatalf("ApplyBatchEdit returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows updated, got %d", n)
	}

	for i, r := range e.Rows() {
		want := before[i]
		if r.Name == "S" || r.Name == "L" {
			want.Price = 10
		}
		if !reflect.DeepEqual(r, want) {
			t.Fatalf("row %q: got %+v want %+v", r.Name, r, want)
		}
	}
	if len(e.Selected()) != 0 {
		t.Fatal("selection must be empty after apply")
	}
	if e.BatchOpen() {
		t.Fatal("dialog must close after apply")
	}
}

func TestBatchEditClampsCommission(t *testing.T) {
	e := newTestEditor(t)
	e.SelectAll()
	if err := e.OpenBatchEdit(); err != nil {
		t.Fatalf("OpenBatchEdit returned error: %v", err)
	}
	if _, err := e.ApplyBatchEdit(BatchPatch{CommissionRate: ptr(999.0)}); err != nil {
		t.Fatalf("ApplyBatchEdit returned error: %v", err)
	}
	for _, r := range e.Rows() {
		if r.CommissionRate != 20 {
			t.Fatalf("row %q commission = %v want 20", r.Name, r.CommissionRate)
		}
	}
}

func TestBatchEditGuards(t *testing.T) {
	e := newTestEditor(t)

	if err := e.OpenBatchEdit(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if e.BatchOpen() {
		t.Fatal("dialog must stay closed")
	}
	if _, err := e.ApplyBatchEdit(BatchPatch{Price: ptr(1.0)}); !errors.Is(err, ErrBatchClosed) {
		t.Fatalf("expected ErrBatchClosed, got %v", err)
	}

	e.ToggleRow("Red,S")
	if err := e.OpenBatchEdit(); err != nil {
		t.Fatalf("OpenBatchEdit returned error: %v", err)
	}

	_, err := e.ApplyBatchEdit(BatchPatch{Price: ptr(5.0), Limit: ptr(-2)})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["limit"]; !ok {
		t.Fatalf("expected limit field error, got %v", verr.Fields)
	}
	if got, _ := e.Row("Red,S"); got.Price != 0 {
		t.Fatal("invalid batch must not apply partially")
	}
	if !e.BatchOpen() || len(e.Selected()) != 1 {
		t.Fatal("invalid batch must keep dialog and selection")
	}

	e.CancelBatchEdit()
	if e.BatchOpen() {
		t.Fatal("cancel must close the dialog")
	}
	if len(e.Selected()) != 1 {
		t.Fatal("cancel must keep the selection")
	}
}
