package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"

	"github.com/vbonduro/assetreg/internal/domain"
)

// DefaultQRSize is the edge length in pixels of generated QR images.
const DefaultQRSize = 256

// TagPayload is the text encoded in an asset's QR tag: its decimal id.
func TagPayload(id int64) string {
	return strconv.FormatInt(id, 10)
}

// QRCode returns a PNG QR code of the asset's tag payload, size pixels wide.
func QRCode(id int64, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(TagPayload(id), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// WriteLabel writes a one-page PDF label to w: the asset name, its id and
// the QR tag, centered.
func WriteLabel(w io.Writer, a *domain.Asset) error {
	png, err := QRCode(a.ID, DefaultQRSize)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(a.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(85, 85, 85)
	pdf.CellFormat(0, 8, fmt.Sprintf("ID: %d", a.ID), "", 1, "C", false, 0, "")

	const qrEdge = 66.0
	pageW, _ := pdf.GetPageSize()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", (pageW-qrEdge)/2, pdf.GetY()+8, qrEdge, qrEdge, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render label: %w", err)
	}
	return nil
}
