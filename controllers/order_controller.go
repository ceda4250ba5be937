package controllers

import (
	"net/http"

	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders OrderAPI
	owner  OwnerCheck
}

func NewOrderController(orders OrderAPI, owner OwnerCheck) *OrderController {
	return &OrderController{orders: orders, owner: owner}
}

// PlaceOrder creates an order for the user named in the body. The caller must
// be that user or an admin.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "Failed to place order")
		return
	}
	if oc.owner != nil {
		if err := oc.owner.CanActFor(c, req.UserID); err != nil {
			respondError(c, err, "Failed to place order")
			return
		}
	}

	order, err := oc.orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to place order")
		return
	}
	respond(c, http.StatusCreated, "Order placed successfully", order)
}

func (oc *OrderController) GetUserOrders(c *gin.Context) {
	orders, err := oc.orders.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}
	respondList(c, "", orders, len(orders), nil)
}
