package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// AUTH DTOs
// ========================================

var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "firstName must not be blank")
	}
	return nil
})

// SignupRequest - POST /users/signup
type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Password  string `json:"password"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.RuneLength(3, 255),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("firstName is required"),
			notBlank,
			validation.RuneLength(1, 100).Error("firstName must not exceed 100 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			// bcrypt chỉ dùng 72 byte đầu
			validation.Length(1, 72).Error("password must not exceed 72 bytes"),
		),
	)
}

// SigninRequest - POST /users/signin
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// SigninResponse - token trả về sau khi signin
type SigninResponse struct {
	AccessToken string `json:"access_token"`
}

// NormalizeEmail - email so khớp không phân biệt hoa thường
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
