// File: internal/api/profile_response.go
package api

import "time"

// swagger:model api.ProfileResponse
type ProfileResponse struct {
	ID        string    `json:"id" example:"5b0f2f6e-1c1a-4d7e-9d8a-2b9f7e3c1a10"`
	UserID    string    `json:"userId" example:"user_2Xk9"`
	Name      string    `json:"name" example:"ECarry"`
	Email     string    `json:"email" example:"hello@ecarry.cc"`
	ImageURL  string    `json:"imageUrl" example:"https://utfs.io/f/avatar.png"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
