package bannerservice

import "github.com/Leopold1975/current_banner/internal/banners/domain/models"

type GetCurrentBannerRequest struct {
	Location string
}

// Reason tells why a banner was served. It never reaches the response payload.
type Reason string

const (
	ReasonMatched      Reason = "matched"
	ReasonNoMatch      Reason = "no_match"
	ReasonAssetMissing Reason = "asset_missing"
)

type Selection struct {
	Banner models.Banner
	Image  []byte
	Reason Reason
}

type CurrentBanner struct {
	Title       string
	Description string
	Image       []byte
	ImageFormat string
	Source      Reason
}
