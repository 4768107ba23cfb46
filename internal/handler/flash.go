package handler

import (
	"github.com/gin-gonic/gin"
)

const (
	flashSuccess = "success"
	flashError   = "error"

	flashCookiePrefix = "flash_"
	flashMaxAge       = 60
)

// setFlash stores a one-shot message that the next list request returns.
func setFlash(c *gin.Context, kind, message string) {
	c.SetCookie(flashCookiePrefix+kind, message, flashMaxAge, "/", "", false, true)
}

// popFlash returns pending flash messages and expires their cookies.
func popFlash(c *gin.Context) gin.H {
	flash := gin.H{}
	for _, kind := range []string{flashSuccess, flashError} {
		message, err := c.Cookie(flashCookiePrefix + kind)
		if err != nil || message == "" {
			continue
		}
		flash[kind] = message
		c.SetCookie(flashCookiePrefix+kind, "", -1, "/", "", false, true)
	}
	return flash
}
