package server

// GetCurrentBannerResponse mirrors bannerv1.GetCurrentBannerResponse. Image is base64 in JSON.
type GetCurrentBannerResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       []byte `json:"image"`
	ImageFormat string `json:"image_format"` //nolint:tagliatelle
}
