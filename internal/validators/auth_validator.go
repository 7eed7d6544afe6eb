package validators

import (
	"fmt"
	"strings"
	"unicode"
)

type SignupRequest struct {
	FirstName       string `form:"firstName" binding:"required,min=1,max=50"`
	LastName        string `form:"lastName" binding:"required,min=1,max=50"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirmPassword" binding:"required"`
	RedirectURL     string `form:"redirectURL"`
}

type LoginRequest struct {
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required"`
	RedirectURL string `form:"redirectURL"`
}

const (
	passwordMinLength = 8
	passwordMaxLength = 64
	passwordSpecials  = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"
)

// ValidatePassword enforces the signup password policy. It returns
// every violated rule so the form can list them all at once.
func ValidatePassword(password, confirm string) []string {
	var errs []string

	if len(password) < passwordMinLength {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters (minimum length)", passwordMinLength))
	}
	if len(password) > passwordMaxLength {
		errs = append(errs, fmt.Sprintf("password must be at most %d characters", passwordMaxLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		errs = append(errs, "password must contain an uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must contain a lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain a digit")
	}
	if !hasSpecial {
		errs = append(errs, "password must contain a special character")
	}

	if password != confirm {
		errs = append(errs, "passwords do not match")
	}

	return errs
}
