package dto

import (
	"labbook/internal/domains/test/model"
	"labbook/shared"
	gDto "labbook/shared/dto"
	"labbook/shared/timezone"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTestRequest struct {
	Title       string                `json:"title"       validate:"required,max=150"`
	Description string                `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal       `json:"price"       validate:"gt=0"`
	Slot        int                   `json:"slot"        validate:"gte=0"`
	Image       *multipart.FileHeader `json:"-"           form:"image" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2" swaggerignore:"true"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateTestRequest) ToModel(user, imageURL string) model.Test {
	test := model.Test{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		Slot:        c.Slot,
		Image:       imageURL,
	}
	test.Stamp(timezone.Now(), user)

	return test
}

// UpdateTestRequest edits catalogue data and inventory. Nil fields are left untouched.
type UpdateTestRequest struct {
	Title       string                `db:"title"       json:"title"       validate:"omitempty,max=150"`
	Description *string               `db:"description" json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal      `db:"price"       json:"price"       validate:"omitempty"`
	Slot        *int                  `db:"slot"        json:"slot"        validate:"omitempty,gte=0"`
	Image       *multipart.FileHeader `json:"-"         form:"image" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2" swaggerignore:"true"`
	ImageFile   multipart.File        `json:"-"`
	ImageURL    string                `db:"image"       json:"-"`
}

func (u *UpdateTestRequest) IsEmpty() bool {
	return u.Title == "" && u.Description == nil && u.Price == nil && u.Slot == nil && u.Image == nil
}

type TestResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Slot        int             `json:"slot"`
	DataCount   int             `json:"data_count"`
	Image       string          `json:"image"`
	gDto.Metadata
}

func (r *TestResponse) FromModel(m model.Test) {
	r.ID = m.ID
	r.Title = m.Title
	r.Description = m.Description
	r.Price = m.Price
	r.Slot = m.Slot
	r.DataCount = m.DataCount
	r.Image = m.Image
	r.Metadata.FromModel(m.Metadata)
}

type GetTestsResponse struct {
	Tests     []TestResponse `json:"tests"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTestsResponse) FromModels(models []model.Test, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tests = make([]TestResponse, len(models))
	for i, m := range models {
		r.Tests[i].FromModel(m)
	}
}

func FromModels(models []model.Test) []TestResponse {
	res := make([]TestResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
