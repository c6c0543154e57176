package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beautybook/services/places"
)

// BusinessHandler serves public business metadata for the storefront.
type BusinessHandler struct {
	Places  *places.Client
	PlaceID string
}

func NewBusinessHandler(client *places.Client, placeID string) *BusinessHandler {
	return &BusinessHandler{Places: client, PlaceID: placeID}
}

// GetBusinessInfo returns business details, live when the places lookup is
// configured and a static default otherwise.
func (h *BusinessHandler) GetBusinessInfo(c *gin.Context) {
	info := h.Places.BusinessInfo(c.Request.Context(), h.PlaceID)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"business": info,
	})
}
