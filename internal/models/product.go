package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the fixed set of catalog sections.
type Category string

const (
	CategoryChaussuresHomme Category = "chaussures-homme"
	CategoryChaussuresFemme Category = "chaussures-femme"
	CategoryPerruques       Category = "perruques"
	CategorySacsFemme       Category = "sacs-femme"
	CategoryTechAI          Category = "tech-ai"
	CategoryConsoles        Category = "consoles"
	CategoryHygiene         Category = "hygiene"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryChaussuresHomme,
	CategoryChaussuresFemme,
	CategoryPerruques,
	CategorySacsFemme,
	CategoryTechAI,
	CategoryConsoles,
	CategoryHygiene,
}

// ValidCategory reports whether c is a known catalog section.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Image is a legacy single-image field kept in
// sync with Images[0] for older clients.
type Product struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Currency    string          `db:"currency" json:"currency"`
	Category    Category        `db:"category" json:"category"`
	Image       string          `db:"image" json:"image"`
	Images      []string        `db:"images" json:"images"`
	Stock       int             `db:"stock" json:"stock"`
	VendorName  string          `db:"vendor_name" json:"vendorName,omitempty"`
	VendorPhone string          `db:"vendor_phone" json:"vendorPhone,omitempty"`
	VendorEmail string          `db:"vendor_email" json:"vendorEmail,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// SyncImages keeps the legacy Image field mirrored to Images[0]. Empty
// entries are dropped; if only the legacy field is set it seeds the list.
func (p *Product) SyncImages() {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 && p.Image != "" {
		images = append(images, p.Image)
	}
	p.Images = images
	if len(images) > 0 {
		p.Image = images[0]
	} else {
		p.Image = ""
	}
}

// ProductResponse is the wire form of a catalog entry.
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	VendorName  string   `json:"vendorName,omitempty"`
	VendorPhone string   `json:"vendorPhone,omitempty"`
	VendorEmail string   `json:"vendorEmail,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// ToResponse maps a catalog entry to its wire form.
func (p *Product) ToResponse() *ProductResponse {
	price, _ := p.Price.Float64()
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Currency:    p.Currency,
		Category:    p.Category,
		Image:       p.Image,
		Images:      images,
		Stock:       p.Stock,
		VendorName:  p.VendorName,
		VendorPhone: p.VendorPhone,
		VendorEmail: p.VendorEmail,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

// ProductsToResponse maps the catalog to its wire form.
func ProductsToResponse(products []Product) []*ProductResponse {
	resp := make([]*ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, products[i].ToResponse())
	}
	return resp
}

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	VendorName  string   `json:"vendorName"`
	VendorPhone string   `json:"vendorPhone"`
	VendorEmail string   `json:"vendorEmail"`
}
