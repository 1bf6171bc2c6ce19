// File: internal/profile/form.go
package profile

import (
	"context"
	"errors"

	"ecarry-photography/internal/api"
)

// Form 保存單次編輯工作階段的欄位狀態
type Form struct {
	values Values
	errs   Violations
}

// NewForm 以目前的 profile 作為預設值，沒有資料時為空字串
func NewForm(current *api.ProfileResponse) *Form {
	f := &Form{}
	if current != nil {
		f.values = Values{Name: current.Name, ImageURL: current.ImageURL}
	}
	return f
}

func (f *Form) SetName(name string)    { f.values.Name = name }
func (f *Form) SetImageURL(url string) { f.values.ImageURL = url }
func (f *Form) Values() Values         { return f.values }
func (f *Form) Errors() Violations     { return f.errs }

// FieldError 回傳要顯示在欄位旁的訊息
func (f *Form) FieldError(field string) string { return f.errs.For(field) }

// Submit 先驗證；有錯誤時不送出請求並回傳 Violations
func (f *Form) Submit(ctx context.Context, s *Submitter) (*api.ProfileResponse, error) {
	v, err := Validate(f.values)
	if err != nil {
		var violations Violations
		if errors.As(err, &violations) {
			f.errs = violations
		}
		return nil, err
	}
	f.errs = nil
	return s.Submit(ctx, v)
}
