package utils

import (
	"errors"
	"regexp"

	"CluCare/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

var knownRoles = []interface{}{
	models.RoleAdmin, models.RolePharmacy, models.RoleDoctor, models.RoleNurse, models.RolePatient,
}

// LoginRequest is the /login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ValidateLoginRequest checks the login payload.
func ValidateLoginRequest(req LoginRequest) error {
	return validation.Errors{
		"email":    validation.Validate(req.Email, validation.Required, is.Email),
		"password": validation.Validate(req.Password, validation.Required),
		"role":     validation.Validate(req.Role, validation.Required, validation.In(knownRoles...)),
	}.Filter()
}

// ValidateUserData validates a new generic account.
func ValidateUserData(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(3, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Role, validation.Required, validation.In(models.RoleAdmin, models.RolePharmacy)),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
}

// ValidateStaffData validates a new staff record.
func ValidateStaffData(staff models.Staff) error {
	return validation.ValidateStruct(&staff,
		validation.Field(&staff.Name, validation.Required),
		validation.Field(&staff.Role, validation.Required, validation.In(models.RoleDoctor, models.RoleNurse)),
		validation.Field(&staff.Email, is.Email),
	)
}

// ValidatePatientData validates a new patient record.
func ValidatePatientData(patient models.Patient) error {
	return validation.ValidateStruct(&patient,
		validation.Field(&patient.Name, validation.Required),
		validation.Field(&patient.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&patient.Type, validation.In(models.AdmissionOPD, models.AdmissionIPD, models.AdmissionEmergency)),
	)
}

// ValidateEmergencyCase validates an emergency intake after normalization.
// Ward and bed are required because the intake always occupies a slot.
func ValidateEmergencyCase(emergency models.EmergencyCase) error {
	return validation.ValidateStruct(&emergency,
		validation.Field(&emergency.PatientName, validation.Required),
		validation.Field(&emergency.Condition, validation.Required),
		validation.Field(&emergency.Priority, validation.Required,
			validation.In(models.PriorityLow, models.PriorityMedium, models.PriorityHigh)),
		validation.Field(&emergency.WardNumber, validation.Required, validation.Min(1)),
		validation.Field(&emergency.BedNumber, validation.Required, validation.Min(1)),
	)
}

// ValidateStockItem validates a pharmacy inventory line.
func ValidateStockItem(item models.StockItem) error {
	return validation.ValidateStruct(&item,
		validation.Field(&item.Name, validation.Required),
		validation.Field(&item.Quantity, validation.Min(0)),
		validation.Field(&item.Price, validation.Min(0.0)),
	)
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	return validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
