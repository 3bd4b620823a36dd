package model

import (
	"strconv"
	"strings"
	"time"

	"realestate-agent/internal/agent"

	"github.com/pgvector/pgvector-go"
)

// Property represents a property listing
type Property struct {
	ID            int64            `json:"id" db:"id"`
	Title         *string          `json:"title,omitempty" db:"title"`
	Description   *string          `json:"description,omitempty" db:"description"`
	Price         *float64         `json:"price,omitempty" db:"price"`
	Location      *string          `json:"location,omitempty" db:"location"`
	PropertyType  *string          `json:"property_type,omitempty" db:"property_type"`
	Bedrooms      *int             `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms     *int             `json:"bathrooms,omitempty" db:"bathrooms"`
	AreaSqft      *float64         `json:"area_sqft,omitempty" db:"area_sqft"`
	Amenities     JSONArray        `json:"amenities" db:"amenities"`
	Images        JSONArray        `json:"images" db:"images"`
	AvailableFrom *time.Time       `json:"available_from,omitempty" db:"available_from"`
	Embedding     *pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty" db:"updated_at"`
}

// ToListing converts the property into the subset shown to the model
func (p Property) ToListing() agent.Listing {
	return agent.Listing{
		Title:        deref(p.Title),
		Location:     deref(p.Location),
		Bedrooms:     p.Bedrooms,
		Price:        p.Price,
		PropertyType: deref(p.PropertyType),
	}
}

// EmbeddingText is the text a property is embedded from
func (p Property) EmbeddingText() string {
	var parts []string

	if t := deref(p.Title); t != "" {
		parts = append(parts, t)
	}
	if p.Bedrooms != nil && p.PropertyType != nil {
		parts = append(parts, strconv.Itoa(*p.Bedrooms)+" bedroom "+*p.PropertyType)
	} else if pt := deref(p.PropertyType); pt != "" {
		parts = append(parts, pt)
	}
	if l := deref(p.Location); l != "" {
		parts = append(parts, "in "+l)
	}
	if p.Price != nil {
		parts = append(parts, "AED "+strconv.FormatFloat(*p.Price, 'f', -1, 64))
	}
	if len(p.Amenities) > 0 {
		parts = append(parts, "amenities: "+strings.Join(p.Amenities, ", "))
	}
	if d := deref(p.Description); d != "" {
		parts = append(parts, d)
	}

	return strings.Join(parts, ". ")
}

// ToListings converts properties in order
func ToListings(props []Property) []agent.Listing {
	listings := make([]agent.Listing, len(props))
	for i, p := range props {
		listings[i] = p.ToListing()
	}
	return listings
}

// PropertyCreateRequest is the body of POST /properties
type PropertyCreateRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Price         float64    `json:"price" binding:"required,gt=0"`
	Location      string     `json:"location" binding:"required"`
	PropertyType  string     `json:"property_type" binding:"required"`
	Bedrooms      int        `json:"bedrooms" binding:"gte=0"`
	Bathrooms     int        `json:"bathrooms" binding:"gte=0"`
	AreaSqft      float64    `json:"area_sqft" binding:"gte=0"`
	Amenities     []string   `json:"amenities"`
	Images        []string   `json:"images"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
}

// ToProperty builds the row to insert. AvailableFrom defaults to now.
func (r PropertyCreateRequest) ToProperty(now time.Time) Property {
	available := now
	if r.AvailableFrom != nil {
		available = *r.AvailableFrom
	}

	amenities := JSONArray(r.Amenities)
	if amenities == nil {
		amenities = JSONArray{}
	}
	images := JSONArray(r.Images)
	if images == nil {
		images = JSONArray{}
	}

	return Property{
		Title:         &r.Title,
		Description:   &r.Description,
		Price:         &r.Price,
		Location:      &r.Location,
		PropertyType:  &r.PropertyType,
		Bedrooms:      &r.Bedrooms,
		Bathrooms:     &r.Bathrooms,
		AreaSqft:      &r.AreaSqft,
		Amenities:     amenities,
		Images:        images,
		AvailableFrom: &available,
	}
}

// PropertyFilter holds the optional filters of GET /properties
type PropertyFilter struct {
	Location     *string  `form:"location"`
	PropertyType *string  `form:"property_type"`
	MinPrice     *float64 `form:"min_price"`
	MaxPrice     *float64 `form:"max_price"`
	Bedrooms     *int     `form:"bedrooms"` // minimum
	Amenities    []string `form:"amenities"`
	Limit        int      `form:"limit"`
	Offset       int      `form:"offset"`
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding for one property
type EmbeddingItem struct {
	PropertyID int64     `json:"property_id" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
