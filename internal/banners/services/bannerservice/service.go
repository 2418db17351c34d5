package bannerservice

import (
	"context"
	"slices"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/domain/models"
	"github.com/Leopold1975/current_banner/internal/banners/repository/assetrepo"
	"github.com/Leopold1975/current_banner/pkg/logger"
)

type BannerService struct {
	banners []models.Banner
	assets  AssetStore
	lg      logger.Logger
	now     func() time.Time
}

type AssetStore interface {
	GetImage(ctx context.Context, bannerID string) ([]byte, error)
}

type Option func(*BannerService)

// WithClock replaces the wall clock used by GetCurrentBanner.
func WithClock(now func() time.Time) Option {
	return func(bs *BannerService) {
		bs.now = now
	}
}

// New takes ownership of banners. Their order is the tie-break order.
func New(banners []models.Banner, assets AssetStore, lg logger.Logger, opts ...Option) *BannerService {
	bs := &BannerService{
		banners: slices.Clone(banners),
		assets:  assets,
		lg:      lg,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(bs)
	}

	return bs
}

func (bs *BannerService) GetCurrentBanner(ctx context.Context, req GetCurrentBannerRequest) CurrentBanner {
	return NewResponse(bs.Select(ctx, req.Location, bs.now().UTC()))
}

// Select picks the banner to show at location and now. It never fails:
// no match and a missing asset both fall back to models.DefaultBanner.
func (bs *BannerService) Select(ctx context.Context, location string, now time.Time) Selection {
	lg := logger.FromContext(ctx, bs.lg)
	selected, matched := bs.match(lg, location, now)

	if matched == 0 {
		lg.Errorw("no matching banners found, returning default banner",
			"location", location, "reason", ReasonNoMatch)

		return Selection{Banner: models.DefaultBanner, Reason: ReasonNoMatch}
	}

	if matched > 1 {
		lg.Warnw("multiple banners match the criteria, choosing the first one",
			"location", location, "banner_id", selected.ID, "matched", matched)
	}

	image, err := bs.assets.GetImage(ctx, selected.ID)
	if err != nil {
		lg.Errorw("image not found for banner, returning default banner",
			"location", location, "banner_id", selected.ID, "reason", ReasonAssetMissing, "error", err)

		return Selection{Banner: models.DefaultBanner, Reason: ReasonAssetMissing}
	}

	return Selection{Banner: selected, Image: image, Reason: ReasonMatched}
}

// match returns the first eligible banner in load order and the number of eligible banners.
func (bs *BannerService) match(lg logger.Logger, location string, now time.Time) (models.Banner, int) {
	var (
		first models.Banner
		count int
	)

	for _, b := range bs.banners {
		if !b.ActiveAt(now) || !b.ServesLocation(location) {
			continue
		}

		if !b.Condition.Known() {
			lg.Warnw("unrecognized special condition, skipping banner",
				"banner_id", b.ID, "condition", b.Condition.Tag)

			continue
		}

		if !b.Condition.Holds(now) {
			continue
		}

		if count == 0 {
			first = b
		}

		count++
	}

	return first, count
}

// NewResponse maps a selection to the response shape. The image is empty when absent.
func NewResponse(s Selection) CurrentBanner {
	image := s.Image
	if image == nil {
		image = []byte{}
	}

	return CurrentBanner{
		Title:       s.Banner.Title,
		Description: s.Banner.Description,
		Image:       image,
		ImageFormat: assetrepo.ImageFormat,
		Source:      s.Reason,
	}
}
