package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/utils"
)

// ContextKey keys values stored in the request context.
type ContextKey string

const (
	MemberContextKey ContextKey = "member"
)

// AuthMiddleware verifies the identity provider's bearer token and resolves
// the caller's organisation-member row. A token without a matching roster
// row still passes through with a bare identity (no organisation), so the
// submission workflow can fail it with its own precondition error.
func AuthMiddleware(cfg *config.Config, store database.Store, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteUnauthorizedResponse(w, "Missing authorization header")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				utils.WriteUnauthorizedResponse(w, "Invalid authorization header format")
				return
			}

			token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil {
				utils.WriteUnauthorizedResponse(w, "Invalid token: "+err.Error())
				return
			}

			claims, ok := token.Claims.(*models.TokenClaims)
			if !ok || !token.Valid {
				utils.WriteUnauthorizedResponse(w, "Invalid token claims")
				return
			}

			if claims.Type != "access" {
				utils.WriteUnauthorizedResponse(w, "Invalid token type")
				return
			}

			if time.Now().Unix() > claims.Exp {
				utils.WriteUnauthorizedResponse(w, "Token expired")
				return
			}

			member, err := store.GetMemberByUserID(claims.UserID)
			if err != nil {
				if !errors.Is(err, database.ErrMemberNotFound) {
					// Store outage, not a missing roster row.
					log.WithError(err).WithField("user_id", claims.UserID).Error("failed to resolve caller identity")
					utils.WriteBadGatewayResponse(w, "STORE_ERROR", "Failed to resolve caller identity")
					return
				}
				// Authenticated but not on any roster yet; downstream
				// operations requiring an organisation reject this caller.
				log.WithField("user_id", claims.UserID).Warn("no organisation member row for authenticated user")
				member = &models.OrganisationMember{
					UserID: claims.UserID,
					Email:  claims.Email,
				}
			}

			if carrier, ok := r.Context().Value(callerContextKey).(*callerCarrier); ok {
				carrier.email = member.Email
			}

			ctx := context.WithValue(r.Context(), MemberContextKey, member)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetMemberFromContext reads the resolved member identity, if any.
func GetMemberFromContext(ctx context.Context) (*models.OrganisationMember, bool) {
	member, ok := ctx.Value(MemberContextKey).(*models.OrganisationMember)
	return member, ok
}

// RequireMember returns the resolved member or an error when the request
// was not authenticated.
func RequireMember(ctx context.Context) (*models.OrganisationMember, error) {
	member, ok := GetMemberFromContext(ctx)
	if !ok || member == nil {
		return nil, fmt.Errorf("user not authenticated")
	}
	return member, nil
}
