package goods

import (
	"errors"

	"github.com/01moynul/shop-backoffice/internal/models"
	"github.com/01moynul/shop-backoffice/internal/spec"
)

var (
	ErrIncompleteSpecs = errors.New("every spec needs a name and at least one value")
	ErrSkuPriceMissing = errors.New("some skus have no price")
	ErrStockMismatch   = errors.New("goods stock is less than the total sku stock")
	ErrUnknownCategory = errors.New("goods category not found")
)

// Payload assembles the submit body: the other form fields plus the spec list
// and the SKU table projected onto the persisted SKU shape.
func Payload(form models.Goods, groups []models.Spec, rows []spec.Row) models.Goods {
	g := form
	g.SpecList = make([]models.Spec, len(groups))
	for i, s := range groups {
		opts := make([]string, len(s.Options))
		copy(opts, s.Options)
		g.SpecList[i] = models.Spec{Name: s.Name, Options: opts}
	}
	g.SkuList = spec.ToSkus(rows)
	return g
}

// CheckSubmit runs the checks the goods form applies before sending.
func CheckSubmit(g models.Goods) error {
	for _, s := range g.SpecList {
		if s.Name == "" || len(s.Options) == 0 {
			return ErrIncompleteSpecs
		}
	}
	if len(g.SkuList) == 0 {
		return nil
	}

	total := 0
	for _, sku := range g.SkuList {
		if sku.Price == 0 {
			return ErrSkuPriceMissing
		}
		total += sku.Stock
	}
	if g.Stock < total {
		return ErrStockMismatch
	}
	return nil
}

// Split breaks a goods record from the Goods Service into the plain form
// fields, its spec list and its SKU table.
func Split(g models.Goods) (models.Goods, []models.Spec, []spec.Row) {
	groups := g.SpecList
	if groups == nil {
		groups = []models.Spec{}
	}
	rows := spec.FromSkus(groups, g.SkuList)

	form := g
	form.SpecList = nil
	form.SkuList = nil
	return form, groups, rows
}

// BoundsFor finds the commission range of a category.
func BoundsFor(options []models.GoodsCategoryOption, categoryID int64) (spec.Bounds, bool) {
	for _, o := range options {
		if o.ID == categoryID {
			return spec.Bounds{Min: o.MinSalesCommissionRate, Max: o.MaxSalesCommissionRate}, true
		}
	}
	return spec.Bounds{}, false
}
