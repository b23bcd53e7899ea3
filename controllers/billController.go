package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cafe-ordering/billing"
	"cafe-ordering/helpers"
	"cafe-ordering/models"

	"github.com/gin-gonic/gin"
)

type OrderLookup interface {
	Get(ctx context.Context, id string) (models.Order, error)
}

type BillConfig struct {
	Title    string
	BaseURL  string
	Location *time.Location
}

type BillController struct {
	biller *billing.Biller
	orders OrderLookup
	cfg    BillConfig
}

func NewBillController(biller *billing.Biller, orders OrderLookup, cfg BillConfig) *BillController {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &BillController{biller: biller, orders: orders, cfg: cfg}
}

func (bc *BillController) GetBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		summary, err := bc.biller.ForGuest(ctx, c.Param("guest_id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func (bc *BillController) DownloadBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		summary, err := bc.biller.ForGuest(ctx, c.Param("guest_id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := billing.RenderPDF(&buf, bc.cfg.Title, summary, bc.cfg.Location); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", billFilename(summary.GuestName)))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

func billFilename(guestName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '/', '\\', ';', '\r', '\n':
			return '_'
		}
		return r
	}, guestName)
	return "bill-" + name + ".pdf"
}

// OrderQRCode serves a PNG that links to the order's bill page.
func (bc *BillController) OrderQRCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := bc.orders.Get(ctx, c.Param("order_id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
		if size < 64 || size > 1024 {
			size = 256
		}
		png, err := billing.QRCode(bc.cfg.BaseURL, order.ID, size)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
