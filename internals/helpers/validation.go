package helper

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Nomor HP Indonesia: +62 / 62 / 0 opsional, lalu 8-13 digit.
var idPhoneRe = regexp.MustCompile(`^(\+62|62|0)?[0-9]{8,13}$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator mengembalikan instance bersama yang sudah punya tag custom
// (idphone, notblank) dan memakai nama json sebagai nama field.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("idphone", func(fl validator.FieldLevel) bool {
			return idPhoneRe.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

func IsValidIDPhone(s string) bool {
	return idPhoneRe.MatchString(strings.TrimSpace(s))
}

// ValidationErrors menerjemahkan error validator ke []FieldError.
// Error non-validasi dikembalikan sebagai satu entri tanpa field.
func ValidationErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s wajib diisi", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s minimal %s karakter", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s minimal %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s harus berupa angka positif", fe.Field())
	case "email":
		return "Format email tidak valid"
	case "idphone":
		return "Nomor telepon tidak valid"
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s tidak valid (%s)", fe.Field(), fe.Tag())
	}
}
