package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type CartController struct {
	cart CartAPI
}

func NewCartController(cart CartAPI) *CartController {
	return &CartController{cart: cart}
}

// Quote prices a cart without storing it.
func (cc *CartController) Quote(c *gin.Context) {
	var raw struct {
		Items json.RawMessage `json:"items"`
	}
	if err := c.ShouldBindJSON(&raw); err != nil {
		respondError(c, bindError(err), "Failed to compute cart")
		return
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw.Items), []byte("[")) {
		respondError(c, apperrors.Validation("Items must be an array"), "Failed to compute cart")
		return
	}

	var req models.CartRequest
	if err := json.Unmarshal(raw.Items, &req.Items); err != nil {
		respondError(c, bindError(err), "Failed to compute cart")
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		respondError(c, bindError(err), "Failed to compute cart")
		return
	}

	quote, err := cc.cart.Quote(req.Items)
	if err != nil {
		respondError(c, err, "Failed to compute cart")
		return
	}
	respond(c, http.StatusOK, "", quote)
}
