package validator_test

import (
	"labbook/shared/failure"
	"labbook/shared/validator"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type bookingRequest struct {
	ServiceID string          `json:"service_id" validate:"required"`
	Price     decimal.Decimal `json:"price"      validate:"gt=0"`
	Date      string          `json:"date"       validate:"required,datetime=2006-01-02"`
	Image     string          `json:"image"      validate:"omitempty,imagesource"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name: "valid request",
			body: `{"service_id":"t-1","price":"100.00","date":"2024-05-17"}`,
		},
		{
			name:    "missing service id uses json name",
			body:    `{"price":"100","date":"2024-05-17"}`,
			message: "service_id is required",
		},
		{
			name:    "non positive decimal price",
			body:    `{"service_id":"t-1","price":"0","date":"2024-05-17"}`,
			message: "price must be greater than 0",
		},
		{
			name:    "bad date",
			body:    `{"service_id":"t-1","price":"10","date":"17/05/2024"}`,
			message: "date must match the format 2006-01-02",
		},
		{
			name:    "image must be url or data uri",
			body:    `{"service_id":"t-1","price":"10","date":"2024-05-17","image":"nope"}`,
			message: "image must be a URL or a base64 data URI",
		},
		{
			name:    "malformed json",
			body:    `{`,
			message: "failed to decode request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req bookingRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.message)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateImageSource(t *testing.T) {
	req := bookingRequest{
		ServiceID: "t-1",
		Price:     decimal.NewFromInt(5),
		Date:      "2024-05-17",
		Image:     "data:image/png;base64,iVBORw0KGgo=",
	}

	assert.NoError(t, validator.ValidateStruct(&req))

	req.Image = "https://cdn.lab.test/banner.png"
	assert.NoError(t, validator.ValidateStruct(&req))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("ana@lab.test", "email"))
	assert.ErrorContains(t, validator.ValidateVar("nope", "email"), "valid email")
}

func TestValidate_FileHeaderOnlyFromForm(t *testing.T) {
	type deliverRequest struct {
		Report *multipart.FileHeader `json:"-" form:"report" validate:"required"`
	}

	var req deliverRequest

	err := validator.Validate(strings.NewReader(`{"report":{"Filename":"r.pdf","Size":1}}`), &req)

	assert.Nil(t, req.Report)
	assert.ErrorContains(t, err, "report is required")
}
