// File: internal/profile/validation.go
package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength = 2
	NameMaxLength = 30
)

// Values 表單目前的可編輯欄位
type Values struct {
	Name     string `json:"name" validate:"min=2,max=30"`
	ImageURL string `json:"imageUrl"`
}

// Violation 單一欄位的驗證錯誤
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations 實作 error，內容為所有欄位錯誤
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, violation.Field+": "+violation.Message)
	}
	return strings.Join(msgs, "; ")
}

// For 回傳指定欄位的第一個錯誤訊息，沒有則為空字串
func (v Violations) For(field string) string {
	for _, violation := range v {
		if violation.Field == field {
			return violation.Message
		}
	}
	return ""
}

// 欄位在錯誤訊息中的顯示名稱
var fieldLabels = map[string]string{
	"name":     "Username",
	"imageUrl": "Avatar",
}

// NewValidator 建立以 json tag 作為欄位名稱的 validator
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var validate = NewValidator()

// Validate 檢查表單內容；通過時回傳原值，否則回傳 Violations
func Validate(v Values) (Values, error) {
	if err := validate.Struct(v); err != nil {
		if violations, ok := ViolationsFrom(err); ok {
			return Values{}, violations
		}
		return Values{}, err
	}
	return v, nil
}

// ViolationsFrom 將 validator.ValidationErrors 轉成 Violations
func ViolationsFrom(err error) (Violations, bool) {
	var violations Violations
	if errors.As(err, &violations) {
		return violations, true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(Violations, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out, true
}

func messageFor(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not be longer than %s characters.", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// Validator 讓 Echo 的 c.Validate 使用相同的規則與訊息
// swagger:ignore
type Validator struct {
	validator *validator.Validate
}

func NewEchoValidator() *Validator {
	return &Validator{validator: NewValidator()}
}

// Validate calls the underlying validator
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		if violations, ok := ViolationsFrom(err); ok {
			return violations
		}
		return err
	}
	return nil
}
