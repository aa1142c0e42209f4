package middlewares

import (
	"CluCare/models"
	"CluCare/utils"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextKey defines a custom context key type to store user details in the context.
type contextKey string

const (
	userIDKey    contextKey = "userID"
	userRoleKey  contextKey = "userRole"
	userEmailKey contextKey = "userEmail"
)

// AccountStore is the slice of the identity store the middleware needs to
// confirm a token's account still exists. repositories.IdentityStore
// satisfies it.
type AccountStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindStaffByEmail(ctx context.Context, email string) (*models.Staff, error)
	FindPatientByEmail(ctx context.Context, email string) (*models.Patient, error)
}

// TokenAuthMiddleware validates the Authorization bearer token, re-fetches
// the live record behind it, and adds the session claims to the request
// context. A token for an account that has since been deleted is rejected
// even when its signature and expiry are still valid.
func TokenAuthMiddleware(issuer *utils.TokenIssuer, store AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := issuer.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		exists, err := accountExists(c.Request.Context(), store, claims)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
			c.Abort()
			return
		}
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userRoleKey, claims.Role)
		ctx = context.WithValue(ctx, userEmailKey, claims.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// accountExists checks the token's subject against the live record sets,
// trying the role-implied set first, the same order the login lookup uses.
func accountExists(ctx context.Context, store AccountStore, claims *utils.TokenClaims) (bool, error) {
	fromUsers := func() (bool, error) {
		user, err := store.FindUserByEmail(ctx, claims.Email)
		return user != nil, err
	}
	fromStaff := func() (bool, error) {
		staff, err := store.FindStaffByEmail(ctx, claims.Email)
		return staff != nil, err
	}
	fromPatients := func() (bool, error) {
		patient, err := store.FindPatientByEmail(ctx, claims.Email)
		return patient != nil, err
	}

	order := []func() (bool, error){fromUsers, fromStaff, fromPatients}
	switch claims.Role {
	case models.RoleDoctor, models.RoleNurse:
		order = []func() (bool, error){fromStaff, fromUsers, fromPatients}
	case models.RolePatient:
		order = []func() (bool, error){fromPatients, fromUsers, fromStaff}
	}

	for _, find := range order {
		found, err := find()
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// RoleAuthMiddleware restricts access to users with one of the given roles.
func RoleAuthMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := ExtractUserRoleFromContext(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context"})
			c.Abort()
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient privileges"})
		c.Abort()
	}
}

// ExtractUserIDFromContext retrieves the userID from the context.
func ExtractUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", errors.New("user ID not found in context")
	}
	return userID, nil
}

// ExtractUserRoleFromContext retrieves the user role from the context.
func ExtractUserRoleFromContext(ctx context.Context) (string, error) {
	userRole, ok := ctx.Value(userRoleKey).(string)
	if !ok {
		return "", errors.New("user role not found in context")
	}
	return userRole, nil
}

// ExtractUserEmailFromContext retrieves the user email from the context.
func ExtractUserEmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(userEmailKey).(string)
	if !ok {
		return "", errors.New("user email not found in context")
	}
	return email, nil
}
