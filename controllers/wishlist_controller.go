package controllers

import (
	"github.com/gin-gonic/gin"
)

// WishlistController returns the hydrated wishlist from every endpoint.
type WishlistController struct {
	wishlist WishlistAPI
}

func NewWishlistController(wishlist WishlistAPI) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

func (wc *WishlistController) Get(c *gin.Context) {
	products, err := wc.wishlist.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Failed to fetch wishlist")
		return
	}
	respondList(c, "", products, len(products), nil)
}

func (wc *WishlistController) Add(c *gin.Context) {
	products, err := wc.wishlist.Add(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		respondError(c, err, "Failed to add to wishlist")
		return
	}
	respondList(c, "Added to wishlist", products, len(products), nil)
}

func (wc *WishlistController) Remove(c *gin.Context) {
	products, err := wc.wishlist.Remove(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		respondError(c, err, "Failed to remove from wishlist")
		return
	}
	respondList(c, "Removed from wishlist", products, len(products), nil)
}
