package controllers

import (
	"fmt"
	"net/http"

	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetReceipt serves the receipt of a completed booking. The rendered
// document is returned unless ?format=json asks for the line items.
func (bc *BookingController) GetReceipt(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "booking")
	if !ok {
		return
	}

	if c.Query("format") == "json" {
		receipt, err := bc.bookings.Receipt(c.Request.Context(), actor, id)
		if err != nil {
			utils.RespondWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, receipt)
		return
	}

	doc, contentType, err := bc.bookings.RenderReceipt(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%s"`, id))
	c.Data(http.StatusOK, contentType, doc)
}
