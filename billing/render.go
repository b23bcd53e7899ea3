package billing

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// RenderPDF writes the bill as an A4 PDF: title, guest line, item table
// and totals.
func RenderPDF(w io.Writer, title string, s Summary, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 16)
	pdf.Cell(0, 10, tr("Bill Summary for "+s.GuestName))
	pdf.Ln(14)

	widths := []float64{80, 25, 50, 35}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range []string{"Item Name", "Quantity", "Order Date & Time", "Item Total"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range s.Rows {
		pdf.CellFormat(widths[0], 7, tr(r.Item), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, strconv.Itoa(r.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, r.OrderedAt.In(loc).Format("02 Jan 2006 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(r.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Total Bill: %s, With GST %d%%: %s",
		money(s.Total), int(SurchargeRate*100), money(s.GrandTotal)))

	return pdf.Output(w)
}

// QRCode renders a PNG code that opens the bill page of one order.
func QRCode(baseURL, orderID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(BillURL(baseURL, orderID), qrcode.Medium, size)
}

func BillURL(baseURL, orderID string) string {
	return baseURL + "/bills/" + orderID
}

func money(v float64) string {
	return "Rs. " + strconv.FormatFloat(Round2(v), 'f', 2, 64)
}
