// Package receipt renders the printable parking receipt handed out at checkout.
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	brand      = "PARKFLOW"
	timeLayout = "2006-01-02 15:04"

	pageWidth  = 80.0
	lineHeight = 6.0
	labelWidth = 30.0
)

type Receipt struct {
	BookingID     string
	LotName       string
	VehicleNumber string
	VehicleType   string
	OwnerName     string
	EntryTime     time.Time
	ExitTime      time.Time
	Hours         int64
	Minutes       int64
	PricePerHour  float64
	BillingMode   string
	// BaseCost is empty when only the total is known.
	BaseCost      string
	Exceeded      bool
	Fine          string
	Total         string
	IssuedAt      time.Time
}

// Duration formats the stay as "2h 30m".
func (r Receipt) Duration() string {
	return fmt.Sprintf("%dh %dm", r.Hours, r.Minutes)
}

// Render produces a narrow, till-roll style PDF.
func Render(r Receipt) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: pageWidth, Ht: 160},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.SetTitle("Parking receipt "+r.BookingID, true)
	pdf.AddPage()

	contentWidth := pageWidth - 10

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(contentWidth, 8, brand, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(contentWidth, lineHeight, r.LotName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(contentWidth, 5, "Parking Receipt", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentWidth, 5, r.IssuedAt.Format(timeLayout), "B", 1, "C", false, 0, "")
	pdf.Ln(2)

	rows := [][2]string{
		{"Vehicle", r.VehicleNumber},
	}

	if r.OwnerName != "" {
		rows = append(rows, [2]string{"Owner", r.OwnerName})
	}

	rows = append(rows,
		[2]string{"Type", titleCase(r.VehicleType)},
		[2]string{"Entry", r.EntryTime.Format(timeLayout)},
		[2]string{"Exit", r.ExitTime.Format(timeLayout)},
		[2]string{"Duration", r.Duration()},
	)

	if r.BaseCost != "" {
		rows = append(rows,
			[2]string{"Rate", fmt.Sprintf("%.2f / hour", r.PricePerHour)},
			[2]string{"Billing", titleCase(strings.ReplaceAll(r.BillingMode, "_", " "))},
			[2]string{"Parking", r.BaseCost},
		)
	}

	if r.Exceeded {
		rows = append(rows, [2]string{"Overstay fine", r.Fine})
	}

	for _, row := range rows {
		pdf.CellFormat(labelWidth, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth-labelWidth, lineHeight, row[1], "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(labelWidth, 8, "TOTAL", "TB", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth-labelWidth, 8, r.Total, "TB", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(contentWidth, 4, "Thank you for parking with us", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentWidth, 4, "Ref "+r.BookingID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.Bytes(), nil
}

// FileName is the object name receipts are archived under.
func FileName(bookingID string) string {
	return "receipt_" + bookingID + ".pdf"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
