package dto

import (
	testModel "labbook/internal/domains/test/model"

	"github.com/shopspring/decimal"
)

type MostBookedResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	BookingCount int             `json:"booking_count"`
}

func (r *MostBookedResponse) FromModel(m testModel.Test) {
	r.ID = m.ID
	r.Title = m.Title
	r.Price = m.Price
	r.BookingCount = m.DataCount
}

func MostBookedFromModels(models []testModel.Test) []MostBookedResponse {
	res := make([]MostBookedResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type StatusCountsResponse struct {
	CompletedCount int `json:"completed_count"`
	PendingCount   int `json:"pending_count"`
}

type SummaryResponse struct {
	MostBooked     []MostBookedResponse `json:"most_booked"`
	CompletedCount int                  `json:"completed_count"`
	PendingCount   int                  `json:"pending_count"`
	CancelledCount int                  `json:"cancelled_count"`
}
