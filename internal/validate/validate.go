package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"workersdeck/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()-]{5,20}$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = val.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
	_ = val.RegisterValidation("bstatus", func(fl validator.FieldLevel) bool {
		return domain.BookingStatus(fl.Field().String()).Valid()
	})
	_ = val.RegisterValidation("bdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = val.RegisterValidation("btime", func(fl validator.FieldLevel) bool {
		_, ok := Time(fl.Field().String())
		return ok
	})
	_ = val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || rePhone.MatchString(s)
	})
	return val
}

// Struct runs the struct-tag rules and returns the first failure in a form
// safe to show to clients.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fe validator.ValidationErrors
	if !errors.As(err, &fe) || len(fe) == 0 {
		return err
	}
	f := fe[0]
	switch f.Tag() {
	case "required":
		return fmt.Errorf("%s is required", f.Field())
	case "email":
		return fmt.Errorf("%s must be a valid email", f.Field())
	case "role":
		return fmt.Errorf("%s must be one of customer, worker, admin", f.Field())
	case "bstatus":
		return errors.New("Invalid status value")
	case "bdate":
		return fmt.Errorf("%s must be YYYY-MM-DD", f.Field())
	case "btime":
		return fmt.Errorf("%s must be HH:MM", f.Field())
	}
	return fmt.Errorf("%s is invalid", f.Field())
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a path identifier (uuid or seeded slug).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Time accepts HH:MM or HH:MM:SS.
func Time(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return s, true
		}
	}
	return "", false
}
