package services

import (
	"CluCare/config"
	"CluCare/models"
	"CluCare/repositories"
	"CluCare/utils"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// LoginResult is the outcome of a successful authentication.
type LoginResult struct {
	Token    string            `json:"token"`
	User     utils.TokenClaims `json:"user"`
	Redirect string            `json:"redirect"`
}

// AuthService authenticates accounts across the role-partitioned record sets
// and issues session tokens.
type AuthService interface {
	Authenticate(ctx context.Context, email, password, claimedRole string) (*LoginResult, error)
	Register(ctx context.Context, user *models.User) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
}

type authService struct {
	identity   repositories.IdentityStore
	admissions repositories.AdmissionRepository
	issuer     *utils.TokenIssuer
	config     *config.AppConfig
}

func NewAuthService(identity repositories.IdentityStore, admissions repositories.AdmissionRepository, issuer *utils.TokenIssuer, config *config.AppConfig) AuthService {
	return &authService{identity: identity, admissions: admissions, issuer: issuer, config: config}
}

// candidate is a matched record reduced to what the login flow needs.
type candidate struct {
	id         string
	role       string
	credential string
	claims     utils.TokenClaims
	rehash     func(ctx context.Context, hashed string) error
}

// Authenticate looks the email up in the record set implied by the claimed
// role first, then falls back to scanning the other sets. The stored role
// must match the claimed one before the credential is even checked.
func (s *authService) Authenticate(ctx context.Context, email, password, claimedRole string) (*LoginResult, error) {
	cand, err := s.lookup(ctx, email, claimedRole)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return nil, fmt.Errorf("no account for %s: %w", email, models.ErrNotFound)
	}

	if cand.role != claimedRole {
		return nil, fmt.Errorf("expected role %s but found %s: %w", claimedRole, cand.role, models.ErrRoleMismatch)
	}

	if err := s.verifyCredential(ctx, cand, password); err != nil {
		return nil, err
	}

	token, err := s.issuer.Generate(cand.claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:    token,
		User:     cand.claims,
		Redirect: fmt.Sprintf("/%s/dashboard", cand.role),
	}, nil
}

// lookup tries the role-implied set, then the remaining sets by email alone.
func (s *authService) lookup(ctx context.Context, email, claimedRole string) (*candidate, error) {
	order := []func(context.Context, string) (*candidate, error){
		s.fromUsers, s.fromStaff, s.fromPatients,
	}
	switch claimedRole {
	case models.RoleDoctor, models.RoleNurse:
		order = []func(context.Context, string) (*candidate, error){
			s.fromStaff, s.fromUsers, s.fromPatients,
		}
	case models.RolePatient:
		order = []func(context.Context, string) (*candidate, error){
			s.fromPatients, s.fromUsers, s.fromStaff,
		}
	}

	for _, find := range order {
		cand, err := find(ctx, email)
		if err != nil {
			return nil, err
		}
		if cand != nil {
			return cand, nil
		}
	}
	return nil, nil
}

func (s *authService) fromUsers(ctx context.Context, email string) (*candidate, error) {
	user, err := s.identity.FindUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	return &candidate{
		id:         user.ID,
		role:       user.Role,
		credential: user.Password,
		claims: utils.TokenClaims{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Name:   user.Name,
		},
		rehash: func(ctx context.Context, hashed string) error {
			return s.identity.UpdateUserCredential(ctx, user.ID, hashed)
		},
	}, nil
}

func (s *authService) fromStaff(ctx context.Context, email string) (*candidate, error) {
	staff, err := s.identity.FindStaffByEmail(ctx, email)
	if err != nil || staff == nil {
		return nil, err
	}
	return &candidate{
		id:         staff.ID,
		role:       staff.Role,
		credential: staff.Password,
		claims: utils.TokenClaims{
			UserID: staff.ID,
			Email:  staff.Email,
			Role:   staff.Role,
			Name:   staff.Name,
			Doctor: &utils.DoctorClaims{
				Specialization: staff.Specialization,
				Department:     staff.Department,
				Qualifications: staff.Qualifications,
			},
		},
		rehash: func(ctx context.Context, hashed string) error {
			return s.identity.UpdateStaffCredential(ctx, staff.ID, hashed)
		},
	}, nil
}

func (s *authService) fromPatients(ctx context.Context, email string) (*candidate, error) {
	patient, err := s.identity.FindPatientByEmail(ctx, email)
	if err != nil || patient == nil {
		return nil, err
	}
	claimEmail := patient.Email
	if claimEmail == "" {
		claimEmail = patient.Contact.Email
	}
	// An admitted patient carries its current slot in the token claims.
	var wardNumber, bedNumber int
	if admission, err := s.admissions.GetActiveByPatient(ctx, patient.PatientID); err == nil && admission != nil {
		wardNumber = admission.WardNumber
		bedNumber = admission.BedNumber
	}
	return &candidate{
		id: patient.ID,
		// Patient records carry no explicit role field; infer it.
		role:       patient.InferredRole(),
		credential: patient.Password,
		claims: utils.TokenClaims{
			UserID: patient.ID,
			Email:  claimEmail,
			Role:   models.RolePatient,
			Name:   patient.Name,
			Patient: &utils.PatientClaims{
				PatientID:        patient.PatientID,
				Age:              patient.Age,
				Gender:           patient.Gender,
				MedicalSpecialty: patient.MedicalSpecialty,
				Type:             patient.Type,
				Contact:          patient.Contact,
				Insurance:        patient.Insurance,
				WardNumber:       wardNumber,
				BedNumber:        bedNumber,
			},
		},
		rehash: func(ctx context.Context, hashed string) error {
			return s.identity.UpdatePatientCredential(ctx, patient.ID, hashed)
		},
	}, nil
}

// verifyCredential checks the password against the stored form. Hashed
// credentials are recognized by prefix; anything else is a legacy plaintext
// credential, accepted only behind the migration flag and re-hashed
// immediately on success.
func (s *authService) verifyCredential(ctx context.Context, cand *candidate, password string) error {
	if utils.IsHashed(cand.credential) {
		if !utils.CheckPassword(cand.credential, password) {
			return fmt.Errorf("password verification failed: %w", models.ErrInvalidCredential)
		}
		return nil
	}

	if !s.config.AllowLegacyPlaintext {
		return fmt.Errorf("account requires credential migration: %w", models.ErrInvalidCredential)
	}
	if !utils.CheckLegacyPlaintext(cand.credential, password) {
		return fmt.Errorf("password verification failed: %w", models.ErrInvalidCredential)
	}

	// Migrate the account off plaintext on its first successful login.
	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash legacy credential for %s: %v", cand.id, err)
		return nil
	}
	if err := cand.rehash(ctx, hashed); err != nil {
		log.Printf("Failed to migrate legacy credential for %s: %v", cand.id, err)
	}
	return nil
}

// Register creates a generic (admin/pharmacy) account.
func (s *authService) Register(ctx context.Context, user *models.User) error {
	if err := utils.ValidateUserData(*user); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrValidation)
	}

	exists, err := s.identity.EmailExists(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return fmt.Errorf("email already registered: %w", models.ErrConflict)
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.ID = uuid.New().String()
	user.Password = hashed

	return s.identity.CreateUser(ctx, user)
}

// RequestPasswordReset stores a short-lived reset code and mails it. Unknown
// emails are not revealed to the caller.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.identity.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("Password reset requested for unknown email")
		return nil
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := utils.SendResetCodeEmail(email, code); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ConfirmPasswordReset validates the code and replaces the credential.
func (s *authService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	if err := utils.ValidatePasswordReset(code, newPassword); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrValidation)
	}

	stored, err := utils.GetResetCode(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to read reset code: %w", err)
	}
	if stored == nil || *stored != code {
		return fmt.Errorf("reset code rejected: %w", models.ErrInvalidCredential)
	}

	user, err := s.identity.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no account for %s: %w", email, models.ErrNotFound)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.identity.UpdateUserCredential(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	return utils.DeleteResetCode(ctx, email)
}
