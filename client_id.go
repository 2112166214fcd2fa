package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	clientCookieName = "projection_client"
	clientCookieAge  = 365 * 24 * 60 * 60
)

// clientIDMiddleware identifies the browser with an anonymous UUID cookie and
// sets client_id on the context. A missing or malformed cookie gets a fresh id;
// nothing is rejected since there are no accounts.
func clientIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(clientCookieName)
		if err == nil {
			if parsed, parseErr := uuid.Parse(id); parseErr == nil {
				id = parsed.String()
			} else {
				err = parseErr
			}
		}
		if err != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(clientCookieName, id, clientCookieAge, "/", "", false, true)
		}

		c.Set("client_id", id)
		c.Next()
	}
}
