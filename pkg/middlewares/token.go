package middlewares

import (
	t_token "job_board_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// QueryToken token in query name; the chat client passes its JWT as a
	// query parameter on the websocket handshake
	QueryToken = "auth"

	// CookieToken token in cookie name
	CookieToken = "auth_token"

	// TokenPartyID party id from token, set c.locals name
	TokenPartyID = "PartyID"
	// TokenKind party kind from token, set c.locals name
	TokenKind = "PartyKind"
	// TokenDisplayName display name from token, set c.locals name
	TokenDisplayName = "DisplayName"
)

// JWTMiddleware validates the JWT before the request (or websocket
// upgrade) proceeds and stashes the decoded identity in Locals.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Query(QueryToken)

		if tokenStr == "" {
			tokenStr = c.Cookies(CookieToken)
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		token, err := jwt.ParseWithClaims(tokenStr, &t_token.Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return t_token.JWTSecret, nil
		})

		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		if claims, ok := token.Claims.(*t_token.Claims); ok && token.Valid {
			c.Locals(TokenPartyID, claims.PartyID)
			c.Locals(TokenKind, string(claims.Kind))
			c.Locals(TokenDisplayName, claims.DisplayName)
		} else {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		return c.Next()
	}
}
