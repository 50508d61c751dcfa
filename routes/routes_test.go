package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rosa/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAdminRoutesRequireAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	denyAll := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	hb := &handlers.HandlerBundle{
		Booking:   &handlers.BookingHandler{Logger: zap.NewNop()},
		Admin:     &handlers.AdminHandler{Logger: zap.NewNop()},
		Catalog:   &handlers.CatalogHandler{Logger: zap.NewNop()},
		Comanda:   &handlers.ComandaHandler{Logger: zap.NewNop()},
		GuestAuth: denyAll,
		AdminAuth: denyAll,
	}
	r := gin.New()
	RegisterRoutes(r, hb, zap.NewNop(), 100)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/agendamentos"},
		{http.MethodPost, "/api/admin/agendamentos/block"},
		{http.MethodDelete, "/api/admin/agendamentos/abc"},
		{http.MethodPut, "/api/admin/services/sauna"},
		{http.MethodPost, "/api/admin/comandas"},
		{http.MethodPost, "/api/agendamentos/slots"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
