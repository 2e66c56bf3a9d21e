package user

import (
	"errors"
	"fmt"
	"unicode"

	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/domain/validation"
)

const MinPasswordLen = 8

// Validator проверяет данные регистрации
type Validator interface {
	ValidateRegister(req RegisterRequest) error
	ValidatePassword(password string) error
}

// charClass - класс символов, обязательный в строгом режиме
type charClass struct {
	match func(rune) bool
	err   error
}

var strictClasses = []charClass{
	{unicode.IsLower, errors.New("password must contain at least one lowercase letter")},
	{unicode.IsUpper, errors.New("password must contain at least one uppercase letter")},
	{unicode.IsDigit, errors.New("password must contain at least one digit")},
	{func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) },
		errors.New("password must contain at least one special character")},
}

// PasswordValidator всегда требует MinPasswordLen; в строгом режиме
// дополнительно каждый класс из strictClasses
type PasswordValidator struct {
	classes []charClass
}

func NewPasswordValidator(strict bool) *PasswordValidator {
	v := &PasswordValidator{}
	if strict {
		v.classes = strictClasses
	}
	return v
}

func (v *PasswordValidator) ValidateRegister(req RegisterRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := v.ValidatePassword(req.Password); err != nil {
		return apperr.Wrap(apperr.KindBadRequest, fmt.Sprintf("password validation failed: %v", err), err)
	}
	return nil
}

func (v *PasswordValidator) ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

next:
	for _, c := range v.classes {
		for _, r := range password {
			if c.match(r) {
				continue next
			}
		}
		return c.err
	}
	return nil
}
