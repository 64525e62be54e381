package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategory is the fixed set of catalog categories.
type ProductCategory string

const (
	CategoryLuxury         ProductCategory = "luxury"
	CategorySport          ProductCategory = "sport"
	CategoryClassic        ProductCategory = "classic"
	CategoryLimitedEdition ProductCategory = "limited-edition"
	CategoryDiving         ProductCategory = "diving"
	CategoryChronograph    ProductCategory = "chronograph"
)

// Valid reports whether c is a known category.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryLuxury, CategorySport, CategoryClassic,
		CategoryLimitedEdition, CategoryDiving, CategoryChronograph:
		return true
	}
	return false
}

// ProductSpecification holds the watch-specific attributes of a product.
type ProductSpecification struct {
	CaseMaterial    string   `bson:"caseMaterial" json:"caseMaterial"`
	CaseSize        string   `bson:"caseSize" json:"caseSize"`
	DialColor       string   `bson:"dialColor" json:"dialColor"`
	Movement        string   `bson:"movement" json:"movement"`
	WaterResistance string   `bson:"waterResistance" json:"waterResistance"`
	StrapMaterial   string   `bson:"strapMaterial" json:"strapMaterial"`
	StrapColor      string   `bson:"strapColor" json:"strapColor"`
	Crystal         string   `bson:"crystal" json:"crystal"`
	PowerReserve    string   `bson:"powerReserve,omitempty" json:"powerReserve,omitempty"`
	Features        []string `bson:"features" json:"features"`
}

// Product is a catalog entry. Deleting a product only flips IsActive;
// the document stays in the collection.
type Product struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name"`
	Brand            string               `bson:"brand" json:"brand"`
	Price            float64              `bson:"price" json:"price"`
	OriginalPrice    *float64             `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Description      string               `bson:"description" json:"description"`
	ShortDescription string               `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	Images           []string             `bson:"images" json:"images"`
	Category         ProductCategory      `bson:"category" json:"category"`
	Specifications   ProductSpecification `bson:"specifications" json:"specifications"`
	Stock            int                  `bson:"stock" json:"stock"`
	IsNew            bool                 `bson:"isNew" json:"isNew"`
	IsFeatured       bool                 `bson:"isFeatured" json:"isFeatured"`
	IsActive         bool                 `bson:"isActive" json:"isActive"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// FirstImage returns the primary image URL, or "" when none is set.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
