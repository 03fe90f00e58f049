package domain

type Store struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	BannerURL   string `json:"banner_url"`
	IsActive    bool   `json:"is_active"`
}

type Product struct {
	ID          int64   `json:"id"`
	StoreID     int64   `json:"store_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	InStock     bool    `json:"in_stock"`
}
