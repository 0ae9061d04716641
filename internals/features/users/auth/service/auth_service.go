package service

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workdesk_backend/internals/configs"
	"workdesk_backend/internals/constants"
	"workdesk_backend/internals/features/users/auth/dto"
	userModel "workdesk_backend/internals/features/users/auth/model"
	helper "workdesk_backend/internals/helpers"
)

const accessTTL = 24 * time.Hour

var validate = validator.New()

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	return secret, nil
}

// ==========================
// REGISTER
// ==========================

// Register creates a local-credential account. The very first account
// in an empty install becomes admin so the portal can be bootstrapped
// without seeding; everyone after that starts as employee.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	hashStr := string(hash)

	role := constants.RoleEmployee
	var count int64
	if err := db.Model(&userModel.UserModel{}).Count(&count).Error; err == nil && count == 0 {
		role = constants.RoleAdmin
	}

	user := userModel.UserModel{
		UserName:       strings.TrimSpace(req.UserName),
		UserEmail:      strings.ToLower(strings.TrimSpace(req.Email)),
		UserPassword:   &hashStr,
		UserRole:       role,
		UserIsActive:   true,
		UserEmployeeID: req.EmployeeID,
	}
	if err := db.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "account registered", dto.UserFromModel(&user))
}

// ==========================
// LOGIN
// ==========================

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	err := db.Where("user_email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if user.UserPassword == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "account uses Google sign-in")
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.UserPassword), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account is disabled")
	}

	return issueToken(c, user)
}

// ==========================
// LOGIN GOOGLE
// ==========================

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token required")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email := strings.ToLower(claimSet.Email)
	googleID := claimSet.Sub

	var user userModel.UserModel
	err = db.Where("user_google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Link to an existing local account with the same email, or
		// create a fresh employee account.
		err = db.Where("user_email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = userModel.UserModel{
				UserName:     claimSet.Name,
				UserEmail:    email,
				UserGoogleID: &googleID,
				UserRole:     constants.RoleEmployee,
				UserIsActive: true,
			}
			if err := db.Create(&user).Error; err != nil {
				if helper.IsUniqueViolation(err) {
					return helper.JsonError(c, fiber.StatusConflict, "email already registered")
				}
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
			}
		} else if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
		} else {
			if err := db.Model(&user).Update("user_google_id", googleID).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to link Google account")
			}
			user.UserGoogleID = &googleID
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account is disabled")
	}

	return issueToken(c, user)
}

// ==========================
// LOGOUT / ME
// ==========================

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
	})
	return helper.JsonOK(c, "logged out", nil)
}

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "ok", dto.UserFromModel(&user))
}

// ==========================
// TOKEN ISSUING
// ==========================

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL).Unix(),
	}
	if user.UserEmployeeID != nil {
		claims["employee_id"] = user.UserEmployeeID.String()
	}
	return claims
}

func issueToken(c *fiber.Ctx, user userModel.UserModel) error {
	secret, err := getJWTSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).
		SignedString([]byte(secret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTL),
	})

	return helper.JsonOK(c, "login successful", fiber.Map{
		"user":         dto.UserFromModel(&user),
		"access_token": token,
	})
}
