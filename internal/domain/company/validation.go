package company

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpggio/jobtracker/internal/dates"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		return dates.IsValid(fl.Field().String())
	})
	return v
}

type companyRules struct {
	Name string `json:"name" validate:"required"`
}

type applicationRules struct {
	Title        string `json:"title" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=Applied Interview Offer Rejected"`
	DateApplied  string `json:"dateApplied" validate:"required,calendardate"`
	FollowUpDate string `json:"followUpDate" validate:"omitempty,calendardate"`
}

type noteRules struct {
	Title    string `json:"title" validate:"required"`
	Date     string `json:"date" validate:"required,calendardate"`
	Category string `json:"category" validate:"required,oneof=preparation question feedback"`
}

// ValidateCompany checks the fields a stored company must carry.
func ValidateCompany(c Company) error {
	return check(companyRules{Name: strings.TrimSpace(c.Name)})
}

// ValidateApplication checks a fully defaulted application, including the
// follow-up ordering rule.
func ValidateApplication(app Application) error {
	err := check(applicationRules{
		Title:        strings.TrimSpace(app.Title),
		Status:       string(app.Status),
		DateApplied:  app.DateApplied,
		FollowUpDate: app.FollowUpDate,
	})
	if err != nil {
		return err
	}
	if app.FollowUpDate == "" {
		return nil
	}
	cmp, err := dates.Compare(app.FollowUpDate, app.DateApplied)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if cmp < 0 {
		return ErrFollowUpBeforeApplied
	}
	return nil
}

// ValidateNote checks a fully defaulted interview note.
func ValidateNote(n Note) error {
	return check(noteRules{
		Title:    strings.TrimSpace(n.Title),
		Date:     n.Date,
		Category: string(n.Category),
	})
}

func check(rules any) error {
	err := validate.Struct(rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s (got %q)", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "calendardate":
		return fmt.Sprintf("%s is not a YYYY-MM-DD date (got %q)", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
