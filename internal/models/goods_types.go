package models

// Spec is one option group of a goods record, e.g. {"name": "Color", "options": ["Red", "Blue"]}.
type Spec struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Sku is the persisted shape of one sellable variant.
// Name is the comma-joined option values, one per spec, in spec order.
type Sku struct {
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"originalPrice"`
	CommissionRate float64 `json:"commissionRate"`
	Stock          int     `json:"stock"`
	Limit          int     `json:"limit"`
}

// GoodsCategoryOption is one entry of shop/goods/category_options.
type GoodsCategoryOption struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	MinSalesCommissionRate float64 `json:"minSalesCommissionRate"`
	MaxSalesCommissionRate float64 `json:"maxSalesCommissionRate"`
}

// Goods mirrors the goods record exchanged with the Goods Service.
// Unset scalar fields are dropped on submit; specList and skuList are always sent.
type Goods struct {
	ID                  int64    `json:"id,omitempty"`
	Status              int      `json:"status,omitempty"`
	FailureReason       string   `json:"failureReason,omitempty"`
	CategoryIDs         []int64  `json:"categoryIds,omitempty"`
	Cover               string   `json:"cover,omitempty"`
	Video               string   `json:"video,omitempty"`
	ImageList           []string `json:"imageList,omitempty"`
	DetailImageList     []string `json:"detailImageList,omitempty"`
	DefaultSpecImage    string   `json:"defaultSpecImage,omitempty"`
	Name                string   `json:"name,omitempty"`
	Introduction        string   `json:"introduction,omitempty"`
	CategoryID          int64    `json:"categoryId,omitempty"`
	Price               float64  `json:"price,omitempty"`
	MarketPrice         float64  `json:"marketPrice,omitempty"`
	SalesCommissionRate float64  `json:"salesCommissionRate,omitempty"`
	Stock               int      `json:"stock,omitempty"`
	NumberLimit         int      `json:"numberLimit,omitempty"`
	DeliveryMode        int      `json:"deliveryMode,omitempty"`
	FreightTemplateID   int64    `json:"freightTemplateId,omitempty"`
	PickupAddressIDs    []int64  `json:"pickupAddressIds,omitempty"`
	RefundStatus        int      `json:"refundStatus,omitempty"`
	RefundAddressID     int64    `json:"refundAddressId,omitempty"`
	SpecList            []Spec   `json:"specList"`
	SkuList             []Sku    `json:"skuList"`
	Sort                int      `json:"sort,omitempty"`
	CreatedAt           string   `json:"createdAt,omitempty"`
	UpdatedAt           string   `json:"updatedAt,omitempty"`
}
