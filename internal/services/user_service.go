package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/internal/models/response_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/logger"
	mem "simplifytour/pkg/memcache"
	"simplifytour/pkg/storage"
	"simplifytour/pkg/utils"
)

// FieldError is a validation failure reported as a [field, message] pair.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func fieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

const (
	minPasswordLength  = 8
	resetTokenBytes    = 32
	defaultPhoneRegion = "NP"
)

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {}, "abc12345": {},
	"11111111": {}, "00000000": {}, "letmein1": {}, "trustno1": {}, "superman": {},
}

type UserService interface {
	TokenAuth(ctx context.Context, email, password string) (*response_models.TokenResult, error)
	VerifyToken(ctx context.Context, token string) (map[string]interface{}, error)
	RefreshToken(ctx context.Context, token string) (*response_models.TokenResult, error)
	Authenticate(ctx context.Context, token string) (*db_models.User, error)

	GetUser(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.Profile, error)
	ListUsers(ctx context.Context, email string, limit, offset int) ([]db_models.User, int64, error)

	Register(ctx context.Context, email, password, passwordRepeat string) (*db_models.User, string, error)
	ActivateUser(ctx context.Context, token, uid string) error
	ResetPassword(ctx context.Context, email string) error
	ResetPasswordConfirm(ctx context.Context, uid, token, email, newPassword, reNewPassword string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, input request_models.ProfileInput) (*db_models.Profile, error)

	CreateSuperuser(ctx context.Context, email, password string) (*db_models.User, error)
}

type userService struct {
	userRepo     repositories.UserRepository
	mail         IMailService
	resetTokens  mem.ResetTokenStore
	jwt          *utils.JWTManager
	storage      storage.Storage
	validate     *validator.Validate
	resetTimeout time.Duration
	log          logger.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	mail IMailService,
	resetTokens mem.ResetTokenStore,
	jwt *utils.JWTManager,
	store storage.Storage,
	resetTimeout time.Duration,
	log logger.Logger,
) UserService {
	return &userService{
		userRepo:     userRepo,
		mail:         mail,
		resetTokens:  resetTokens,
		jwt:          jwt,
		storage:      store,
		validate:     validator.New(),
		resetTimeout: resetTimeout,
		log:          log,
	}
}

// NormalizeEmail lower-cases the domain part of an address.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func validatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return fieldError("password", fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return fieldError("password", "This password is too common.")
	}
	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return fieldError("password", "This password is entirely numeric.")
	}
	return nil
}

func (s *userService) tokenResult(user *db_models.User, token string, claims *utils.Claims) *response_models.TokenResult {
	return &response_models.TokenResult{
		Token:            token,
		Payload:          claims.Payload(),
		RefreshExpiresIn: s.jwt.RefreshExpiresIn(claims),
		User:             user,
	}
}

func (s *userService) TokenAuth(ctx context.Context, email, password string) (*response_models.TokenResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || utils.ComparePasswords(user.PasswordHash, password) != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, utils.ErrInactiveUser
	}

	token, claims, err := s.jwt.CreateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	now := utils.NowUnixSeconds()
	user.LastLogin = &now
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.log.Warn("update last login for ", user.Email, ": ", err)
	}
	return s.tokenResult(user, token, claims), nil
}

func (s *userService) VerifyToken(_ context.Context, token string) (map[string]interface{}, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return claims.Payload(), nil
}

func (s *userService) RefreshToken(ctx context.Context, token string) (*response_models.TokenResult, error) {
	signed, claims, err := s.jwt.RefreshToken(token)
	if err != nil {
		return nil, err
	}
	return s.tokenResult(nil, signed, claims), nil
}

// Authenticate resolves the active user a token was issued to.
func (s *userService) Authenticate(ctx context.Context, token string) (*db_models.User, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, utils.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || user.Email != claims.Email {
		return nil, utils.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, utils.ErrInactiveUser
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.Profile, error) {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return nil, utils.ErrUserNotFound
	}
	return profile, nil
}

func (s *userService) ListUsers(ctx context.Context, email string, limit, offset int) ([]db_models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, NormalizeEmail(email), limit, offset)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return users, total, nil
}

func (s *userService) newUser(ctx context.Context, email, password string) (*db_models.User, error) {
	email = NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email,max=254"); err != nil {
		return nil, fieldError("email", "Enter a valid email address.")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exists {
		return nil, fieldError("email", "user with this email address already exists.")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &db_models.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		DateJoined:   utils.NowUnixSeconds(),
	}, nil
}

// Register creates an unconfirmed user and mails an activation link. A mail
// failure is logged; the account still exists.
func (s *userService) Register(ctx context.Context, email, password, passwordRepeat string) (*db_models.User, string, error) {
	if password != passwordRepeat {
		return nil, "", fieldError("password", "password is not matching")
	}
	user, err := s.newUser(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", utils.ErrDatabaseError
	}

	token, _, err := s.jwt.CreateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	activation, _, err := s.jwt.CreateTokenWithTTL(user.ID, user.Email, s.resetTimeout)
	if err != nil {
		return nil, "", err
	}
	if err := s.mail.SendActivationEmail(user.Email, utils.EncodeUID(user.ID), activation); err != nil {
		s.log.Error("send activation email to ", user.Email, ": ", err)
	}
	return user, token, nil
}

func (s *userService) userFromUID(ctx context.Context, uid string) (*db_models.User, error) {
	id, err := utils.DecodeUID(uid)
	if err != nil {
		return nil, utils.ErrUserNotFound
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) ActivateUser(ctx context.Context, token, uid string) error {
	user, err := s.userFromUID(ctx, uid)
	if errors.Is(err, utils.ErrUserNotFound) {
		return fieldError("user", "No such user found")
	}
	if err != nil {
		return err
	}

	claims, err := s.jwt.ValidateToken(token)
	if err != nil || claims.Email != user.Email {
		return fieldError("user", "User is invalid")
	}

	user.IsConfirmed = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return fieldError("email", "User with that email does not exist")
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return err
	}
	s.resetTokens.Set(token, user.Email, s.resetTimeout)
	if err := s.mail.SendPasswordResetEmail(user.Email, utils.EncodeUID(user.ID), token); err != nil {
		s.resetTokens.Consume(token)
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}

func (s *userService) ResetPasswordConfirm(ctx context.Context, uid, token, email, newPassword, reNewPassword string) error {
	user, err := s.userFromUID(ctx, uid)
	if errors.Is(err, utils.ErrUserNotFound) {
		return fieldError("uid", "Invalid user id or user doesn't exist.")
	}
	if err != nil {
		return err
	}

	tokenEmail, ok := s.resetTokens.Peek(token)
	if !ok || tokenEmail != user.Email {
		return fieldError("token", "Invalid token for given user.")
	}
	if NormalizeEmail(email) != user.Email {
		return fieldError("email", "Email does not match the given user.")
	}
	if newPassword != reNewPassword {
		return fieldError("password", "The two password fields didn't match.")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Consume claims the token; a concurrent confirmation loses here.
	if s.resetTokens.Consume(token) != user.Email {
		return fieldError("token", "Invalid token for given user.")
	}
	user.PasswordHash = hash
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.resetTokens.Set(token, user.Email, s.resetTimeout)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input request_models.ProfileInput) (*db_models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.PhoneNumber != nil {
		formatted, err := formatPhoneNumber(*input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		profile.PhoneNumber = formatted
	}
	if input.Age != nil {
		if *input.Age < 0 {
			return nil, fieldError("age", "Ensure this value is greater than or equal to 0.")
		}
		profile.Age = input.Age
	}
	if input.ZipCode != nil {
		if *input.ZipCode < 0 {
			return nil, fieldError("zip_code", "Ensure this value is greater than or equal to 0.")
		}
		profile.ZipCode = input.ZipCode
	}
	if input.Username != nil {
		profile.Username = input.Username
	}
	if input.Country != nil {
		profile.Country = input.Country
	}
	if input.City != nil {
		profile.City = input.City
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.Slogan != nil {
		profile.Slogan = input.Slogan
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.Avatar != nil {
		name, err := s.storage.Save(path.Join("avatar", path.Base(input.Avatar.Filename)), input.Avatar.Content)
		if err != nil {
			return nil, fmt.Errorf("save avatar: %w", err)
		}
		profile.Avatar = &name
	}

	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return profile, nil
}

// formatPhoneNumber validates a number and renders it as E.164. Empty clears it.
func formatPhoneNumber(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil, fieldError("phone_number", "Enter a valid phone number.")
	}
	formatted := phonenumbers.Format(num, phonenumbers.E164)
	return &formatted, nil
}

func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*db_models.User, error) {
	user, err := s.newUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	user.IsConfirmed = true
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}
