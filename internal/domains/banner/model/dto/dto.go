package dto

import (
	"labbook/internal/domains/banner/model"
	"labbook/shared"
	gDto "labbook/shared/dto"
	"labbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBannerRequest creates an inactive banner. Image is either a URL or a base64 data URI.
type CreateBannerRequest struct {
	Title       string          `json:"title"       validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Image       string          `json:"image"       validate:"omitempty,imagesource"`
	Coupon      string          `json:"coupon"      validate:"omitempty,alphanum,max=32"`
	Rate        decimal.Decimal `json:"rate"        validate:"gte=0,lte=100"`
}

func (c *CreateBannerRequest) ToModel(user, imageURL string) model.Banner {
	banner := model.Banner{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Image:       imageURL,
		Coupon:      c.Coupon,
		Rate:        c.Rate,
	}
	banner.Stamp(timezone.Now(), user)

	return banner
}

type BannerResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Coupon      string          `json:"coupon"`
	Rate        decimal.Decimal `json:"rate"`
	IsActive    bool            `json:"is_active"`
	gDto.Metadata
}

func (r *BannerResponse) FromModel(m model.Banner) {
	r.ID = m.ID
	r.Title = m.Title
	r.Description = m.Description
	r.Image = m.Image
	r.Coupon = m.Coupon
	r.Rate = m.Rate
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

type GetBannersResponse struct {
	Banners   []BannerResponse `json:"banners"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetBannersResponse) FromModels(models []model.Banner, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Banners = make([]BannerResponse, len(models))
	for i, m := range models {
		r.Banners[i].FromModel(m)
	}
}
