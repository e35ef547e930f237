package receipt

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/phpdave11/gofpdf"

	"hotel_booking/internal/domain"
)

const dateLayout = "Mon, Jan 2, 2006"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Render builds the booking confirmation PDF and a download filename.
// status is the effective status at render time.
func Render(b domain.Booking, status domain.BookingStatus, issuedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Booking confirmation", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	row := func(label, value string) {
		pdf.Cell(0, 7, tr(fmt.Sprintf("%-14s %s", label+":", value)))
		pdf.Ln(7)
	}
	row("Booking ID", safe(b.ID, "-"))
	row("Issued", issuedAt.Format("2006-01-02 15:04"))
	row("Status", string(status))
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Stay")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	row("Hotel", safe(b.HotelName, b.HotelID))
	row("Check-in", b.CheckIn.Format(dateLayout))
	row("Check-out", b.CheckOut.Format(dateLayout))
	row("Nights", fmt.Sprint(b.Nights))
	row("Rooms", fmt.Sprint(b.Rooms))
	pdf.Ln(3)

	if b.GuestName != "" || b.GuestEmail != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Guest")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		row("Name", safe(b.GuestName, "-"))
		row("Email", safe(b.GuestEmail, "-"))
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 9, fmt.Sprintf("Total: $%.2f", b.TotalCost))
	pdf.Ln(12)

	if b.Status == domain.StatusCancelled && b.CancelledAt != nil {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Cancelled on "+b.CancelledAt.Format(dateLayout)+".", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("booking_%s.pdf", unsafeFilename.ReplaceAllString(safe(b.ID, "draft"), "_")), nil
}

func safe(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
