package dto

import (
	"github.com/nhoyhub/orderhub/internal/entity"
	"github.com/nhoyhub/orderhub/internal/pricing"
)

// OrderResponse represents an order as exposed via the HTTP transport.
// CreatedAt is fractional seconds since the epoch; Price is derived from
// the name on every render.
type OrderResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	UDID         string  `json:"udid"`
	ImageURL     string  `json:"image_url"`
	Status       string  `json:"status"`
	DownloadLink *string `json:"download_link"`
	CreatedAt    float64 `json:"created_at"`
	Price        string  `json:"price"`
}

// OrderListResponse is the paged envelope returned by the order listing.
type OrderListResponse struct {
	Items    []OrderResponse `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// NewOrderResponse maps an order entity onto its wire shape.
func NewOrderResponse(o entity.Order) OrderResponse {
	return OrderResponse{
		ID:           o.ID,
		Name:         o.Name,
		UDID:         o.UDID,
		ImageURL:     o.ImageURL,
		Status:       o.Status,
		DownloadLink: o.DownloadLink,
		CreatedAt:    float64(o.CreatedAt.UnixNano()) / 1e9,
		Price:        pricing.FromName(o.Name),
	}
}
