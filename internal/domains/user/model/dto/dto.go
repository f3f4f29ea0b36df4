package dto

import (
	"labbook/internal/domains/user/model"
	"labbook/shared"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/timezone"
)

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login,omitempty"`
	Active    bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Email = m.Email
	r.Name = m.Name
	r.Role = m.Role
	r.Active = m.Active
	r.Metadata.FromModel(m.Metadata)

	if m.LastLogin != nil {
		r.LastLogin = timezone.Format(*m.LastLogin, constant.DateFormat)
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, m := range models {
		r.Users[i].FromModel(m)
	}
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}
