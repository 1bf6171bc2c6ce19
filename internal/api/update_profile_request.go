// File: internal/api/update_profile_request.go
package api

// UpdateProfileRequest PATCH /api/profile 的請求內容
// 欄位為指標：未帶的欄位不會被更新，imageUrl 傳空字串代表清除頭像
// swagger:model api.UpdateProfileRequest
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"required,min=2,max=30" example:"ECarry"`
	ImageURL *string `json:"imageUrl" example:"https://utfs.io/f/avatar.png"`
}
