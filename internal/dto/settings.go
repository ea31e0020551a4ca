package dto

// PublicImageUpdate carries the payload for PUT /config/public. The pointer
// distinguishes an absent field from an empty string.
type PublicImageUpdate struct {
	PublicImageURL *string `json:"public_image_url"`
}

// EsignUpdate carries the payload for PUT /config/esign/:index.
type EsignUpdate struct {
	URL *string `json:"url"`
}
