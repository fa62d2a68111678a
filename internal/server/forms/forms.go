// Package forms validates and normalises the public registration forms.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// InstallationForm is the installation registration as submitted.
type InstallationForm struct {
	IntersectionName     string   `json:"intersection_name" validate:"required"`
	EndUser              string   `json:"end_user" validate:"required"`
	Distributor          string   `json:"distributor" validate:"required,option=distributor"`
	DistributorOther     string   `json:"distributor_other" validate:"required_if=Distributor Other"`
	CabinetType          string   `json:"cabinet_type" validate:"required,option=cabinet_type"`
	CabinetTypeOther     string   `json:"cabinet_type_other" validate:"required_if=CabinetType Other"`
	TLSConnection        string   `json:"tls_connection" validate:"required,option=tls_connection"`
	TLSConnectionOther   string   `json:"tls_connection_other" validate:"required_if=TLSConnection Other"`
	DetectionIO          string   `json:"detection_io" validate:"required,option=detection_io"`
	DetectionIOOther     string   `json:"detection_io_other" validate:"required_if=DetectionIO Other"`
	PhasingFiles         []string `json:"phasing_files"`
	TimingFiles          []string `json:"timing_files"`
	ContactName          string   `json:"contact_name" validate:"required"`
	ContactEmail         string   `json:"contact_email" validate:"required,portal_email"`
	ContactPhone         string   `json:"contact_phone" validate:"required"`
	EstimatedInstallDate string   `json:"estimated_install_date" validate:"required,portal_date"`
}

func (f *InstallationForm) trim() {
	for _, p := range []*string{
		&f.IntersectionName, &f.EndUser, &f.Distributor, &f.DistributorOther,
		&f.CabinetType, &f.CabinetTypeOther, &f.TLSConnection, &f.TLSConnectionOther,
		&f.DetectionIO, &f.DetectionIOOther, &f.ContactName, &f.ContactEmail,
		&f.ContactPhone, &f.EstimatedInstallDate,
	} {
		*p = strings.TrimSpace(*p)
	}
	f.PhasingFiles = cleanNames(f.PhasingFiles)
	f.TimingFiles = cleanNames(f.TimingFiles)
}

// MobilityForm is the mobility-account registration as submitted.
type MobilityForm struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,portal_email"`
	Phone     string `json:"phone" validate:"required"`
	EndUser   string `json:"end_user" validate:"required"`
}

func (f *MobilityForm) trim() {
	for _, p := range []*string{&f.FirstName, &f.LastName, &f.Email, &f.Phone, &f.EndUser} {
		*p = strings.TrimSpace(*p)
	}
}

var requiredMessages = map[string]string{
	"intersection_name":      "Intersection name is required",
	"end_user":               "End user is required",
	"distributor":            "Distributor is required",
	"cabinet_type":           "Cabinet type is required",
	"tls_connection":         "TLS connection is required",
	"detection_io":           "Detection I/O is required",
	"contact_name":           "Contact name is required",
	"contact_email":          "Email is required",
	"contact_phone":          "Phone number is required",
	"estimated_install_date": "Install date is required",
	"first_name":             "First name is required",
	"last_name":              "Last name is required",
	"email":                  "Email is required",
	"phone":                  "Phone number is required",
}

var otherLabels = map[string]string{
	"distributor_other":    "the distributor",
	"cabinet_type_other":   "the cabinet type",
	"tls_connection_other": "the TLS connection",
	"detection_io_other":   "the Detection I/O",
}

// Validator checks registration forms. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	options  Options
}

// New builds a Validator enforcing the given option lists.
func New(options Options) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("portal_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("portal_date", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("option", func(fl validator.FieldLevel) bool {
		return slices.Contains(options.list(fl.Param()), fl.Field().String())
	})

	return &Validator{validate: v, options: options}
}

func (v *Validator) Options() Options {
	return v.options
}

// Installation validates f and returns the record to store. "Other"
// choices are replaced by their override text. The returned record has no
// identity or status yet.
func (v *Validator) Installation(f InstallationForm) (models.Installation, error) {
	f.trim()
	if err := v.check(&f); err != nil {
		return models.Installation{}, err
	}

	date, err := models.ParseDate(f.EstimatedInstallDate)
	if err != nil {
		return models.Installation{}, ValidationErrors{"estimated_install_date": invalidDateMessage}
	}

	return models.Installation{
		IntersectionName:     f.IntersectionName,
		EndUser:              f.EndUser,
		Distributor:          resolve(f.Distributor, f.DistributorOther),
		CabinetType:          resolve(f.CabinetType, f.CabinetTypeOther),
		TLSConnection:        resolve(f.TLSConnection, f.TLSConnectionOther),
		DetectionIO:          resolve(f.DetectionIO, f.DetectionIOOther),
		PhasingFiles:         models.FileNames(f.PhasingFiles),
		TimingFiles:          models.FileNames(f.TimingFiles),
		ContactName:          f.ContactName,
		ContactEmail:         f.ContactEmail,
		ContactPhone:         f.ContactPhone,
		EstimatedInstallDate: date,
	}, nil
}

// MobilityAccount validates f and returns the record to store.
func (v *Validator) MobilityAccount(f MobilityForm) (models.MobilityAccount, error) {
	f.trim()
	if err := v.check(&f); err != nil {
		return models.MobilityAccount{}, err
	}
	return models.MobilityAccount{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		EndUser:   f.EndUser,
	}, nil
}

const invalidDateMessage = "Install date must be a date (YYYY-MM-DD)"

func (v *Validator) check(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	out := ValidationErrors{}
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe.Field(), fe.Tag(), form)
	}
	return out
}

func message(field, tag string, form any) string {
	switch tag {
	case "required":
		if field == "end_user" {
			if _, ok := form.(*MobilityForm); ok {
				return "End user organization is required"
			}
		}
		if m, ok := requiredMessages[field]; ok {
			return m
		}
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("Please specify %s when %q is selected.", otherLabels[field], Other)
	case "portal_email":
		return "Invalid email address"
	case "portal_date":
		return invalidDateMessage
	case "option":
		return fmt.Sprintf("%s must be one of the listed options", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

func resolve(choice, override string) string {
	if choice == Other {
		return override
	}
	return choice
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
