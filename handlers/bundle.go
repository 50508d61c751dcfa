package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers, plus the auth middlewares the
// route groups need, into one struct.
type HandlerBundle struct {
	Booking *BookingHandler
	Admin   *AdminHandler
	Catalog *CatalogHandler
	Comanda *ComandaHandler

	GuestAuth gin.HandlerFunc
	AdminAuth gin.HandlerFunc
}
