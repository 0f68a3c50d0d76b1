package domain

import "time"

// HeroSection is the single hero banner configured per store.
type HeroSection struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CTAText   string    `json:"cta_text,omitempty"`
	CTALink   string    `json:"cta_link,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HeroSlide is one slide in a store's hero carousel.
type HeroSlide struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"store_id"`
	ImageURL     string    `json:"image_url"`
	Title        string    `json:"title,omitempty"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Link         string    `json:"link,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// TrendingCategory pins a category to a store's homepage with an ordering.
type TrendingCategory struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"store_id"`
	CategoryID   string    `json:"category_id"`
	DisplayOrder int       `json:"display_order"`
	Category     *Category `json:"category,omitempty"`
}

// TrendingProduct pins a product to a store's homepage with an ordering.
type TrendingProduct struct {
	ID           string   `json:"id"`
	StoreID      string   `json:"store_id"`
	ProductID    string   `json:"product_id"`
	DisplayOrder int      `json:"display_order"`
	Product      *Product `json:"product,omitempty"`
}

// Testimonial is a customer quote shown on the homepage.
type Testimonial struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HomepageContent aggregates everything a storefront needs to render its
// landing page in one response.
type HomepageContent struct {
	Hero               *HeroSection       `json:"hero,omitempty"`
	Slides             []HeroSlide        `json:"slides"`
	TrendingCategories []TrendingCategory `json:"trending_categories"`
	TrendingProducts   []TrendingProduct  `json:"trending_products"`
	Testimonials       []Testimonial      `json:"testimonials"`
}
