package controllers

import (
	"net/http"

	"cafe-ordering/catalog"
	"cafe-ordering/helpers"
	"cafe-ordering/middleware"
	"cafe-ordering/models"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	menu *catalog.Catalog
}

func NewMenuController(menu *catalog.Catalog) *MenuController {
	return &MenuController{menu: menu}
}

func (mc *MenuController) GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		counts, err := mc.menu.CategoryCounts(ctx)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		listed(c, "Categories fetched successfully", counts)
	}
}

// GetMenu is the ordering view: available items only, optionally narrowed
// to one category.
func (mc *MenuController) GetMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var (
			items []models.MenuItem
			err   error
		)
		if category := c.Query("category"); category != "" {
			items, err = mc.menu.ListByCategory(ctx, category)
		} else {
			items, err = mc.menu.ListAll(ctx)
			items = availableOnly(items)
		}
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		listed(c, "Menu items fetched successfully", items)
	}
}

func availableOnly(items []models.MenuItem) []models.MenuItem {
	out := items[:0]
	for _, it := range items {
		if it.Available {
			out = append(out, it)
		}
	}
	return out
}

func (mc *MenuController) GetAllMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := mc.menu.ListAll(ctx)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		listed(c, "Menu items fetched successfully", items)
	}
}

func (mc *MenuController) CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var in models.NewMenuItem
		if err := bind(c, "menu.CreateMenuItem", &in); err != nil {
			helpers.RespondError(c, err)
			return
		}
		item, err := mc.menu.AddItem(ctx, in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

type availabilityRequest struct {
	Available *bool `json:"is_available" validate:"required"`
}

func (mc *MenuController) SetAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var req availabilityRequest
		if err := bind(c, "menu.SetAvailability", &req); err != nil {
			helpers.RespondError(c, err)
			return
		}
		id := c.Param("item_id")
		if err := mc.menu.SetAvailability(ctx, id, *req.Available); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item_id": id, "is_available": *req.Available})
	}
}

func (mc *MenuController) DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id := c.Param("item_id")
		if err := mc.menu.DeleteItem(ctx, id, confirmed(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item_id": id, "deleted": true})
	}
}

// DeleteCategory reports how many items were removed even when some
// deletes failed.
func (mc *MenuController) DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := mc.menu.DeleteCategory(ctx, c.Param("category"), confirmed(c))
		if err != nil {
			if res.Matched > 0 {
				middleware.LoggerFrom(c).Warn().Err(err).Int("deleted", res.Deleted).Msg("partial category delete")
				c.AbortWithStatusJSON(helpers.StatusFor(err), gin.H{"error": err.Error(), "result": res})
				return
			}
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
