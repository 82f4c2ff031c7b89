package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register decoders so photo data can be probed
	_ "image/jpeg" // before handing it to the PDF engine
	_ "image/png"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/store"
)

// PDFOptions controls the content of a PDF export. All toggles are
// independent; Date optionally restricts the export to one travel day.
type PDFOptions struct {
	Date          string
	Title         string
	IncludePhotos bool
	IncludeMaps   bool
	IncludeStats  bool

	// Now supplies the generation timestamp; defaults to time.Now.
	Now func() time.Time
}

// Page geometry in millimeters (A4 portrait).
const (
	pdfMargin     = 20.0
	pdfMapWidth   = 80.0
	pdfMapHeight  = 60.0
	pdfPhotoWidth = 70.0
	pdfPhotoHght  = 50.0
)

const pdfAttribution = "Generated by Travel Logger"

// pdfDoc carries the document handle and the running layout cursor shared by
// all section writers.
type pdfDoc struct {
	pdf       *fpdf.Fpdf
	tr        func(string) string
	pageW     float64
	pageH     float64
	textWidth float64
}

// GeneratePDF renders the collection as a paginated A4 document: cover page,
// optional statistics, then one section per entry sorted by travel date
// ascending. Returns domain.ErrNoContent before drawing anything when the
// (date-filtered) collection is empty.
func GeneratePDF(entries []domain.Entry, opts PDFOptions) ([]byte, error) {
	filtered := store.FilterByDate(entries, opts.Date)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("export.GeneratePDF: %w", domain.ErrNoContent)
	}
	if opts.Title == "" {
		opts.Title = "Travel Log Export"
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AliasNbPages("")

	pageW, pageH := pdf.GetPageSize()
	doc := &pdfDoc{
		pdf:       pdf,
		tr:        pdf.UnicodeTranslatorFromDescriptor(""),
		pageW:     pageW,
		pageH:     pageH,
		textWidth: pageW - 2*pdfMargin,
	}

	// Every page gets the same footer: attribution left, page index right.
	// {nb} is replaced with the final page count when the document closes.
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(doc.textWidth/2, 10, pdfAttribution, "", 0, "L", false, 0, "")
		pdf.CellFormat(doc.textWidth/2, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	doc.writeCover(filtered, opts, now())
	if opts.IncludeStats {
		doc.writeStats(filtered, opts.Date)
	}

	pdf.AddPage()
	for i, e := range store.SortByDate(filtered) {
		doc.writeEntry(i+1, e, opts)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export.GeneratePDF: render: %w", err)
	}
	return buf.Bytes(), nil
}

// breakIfNeeded starts a new page when the next block of the given height
// would overflow the bottom margin, resetting the cursor to the top margin.
func (d *pdfDoc) breakIfNeeded(height float64) {
	if d.pdf.GetY()+height > d.pageH-pdfMargin {
		d.pdf.AddPage()
		d.pdf.SetY(pdfMargin)
	}
}

// writeWrapped emits a word-wrapped text block at the current cursor.
func (d *pdfDoc) writeWrapped(text string, size float64, style string) {
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.MultiCell(d.textWidth, size*0.5, d.tr(text), "", "L", false)
}

func (d *pdfDoc) writeCover(entries []domain.Entry, opts PDFOptions, now time.Time) {
	pdf := d.pdf
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(pdfMargin, 40)
	pdf.CellFormat(d.textWidth, 10, d.tr(opts.Title), "", 0, "C", false, 0, "")

	subtitle := fmt.Sprintf("Complete travel log (%d entries)", len(entries))
	if opts.Date != "" {
		subtitle = "Travel entries for " + longDate(opts.Date)
	}
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetXY(pdfMargin, 60)
	pdf.CellFormat(d.textWidth, 8, d.tr(subtitle), "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(pdfMargin, 80)
	pdf.CellFormat(d.textWidth, 6, "Generated on "+now.Format("January 2, 2006 15:04"), "", 0, "C", false, 0, "")
}

func (d *pdfDoc) writeStats(entries []domain.Entry, date string) {
	stats := store.ComputeStats(entries)

	d.pdf.SetY(100)
	d.writeWrapped("Travel Statistics", 18, "B")
	d.pdf.Ln(4)

	span := fmt.Sprintf("%d days", stats.DateSpanDays)
	if date != "" {
		span = "Single day"
	}

	d.writeWrapped(fmt.Sprintf("Total Entries: %d", stats.TotalEntries), 12, "")
	d.writeWrapped(fmt.Sprintf("Unique Locations: %d", stats.UniqueLocations), 12, "")
	d.writeWrapped(fmt.Sprintf("Average Rating: %.1f/5 stars", stats.AverageRating), 12, "")
	d.writeWrapped("Time Span: "+span, 12, "")
	d.pdf.Ln(4)

	d.writeWrapped("Categories Breakdown:", 12, "B")
	for _, t := range domain.Types() {
		d.writeWrapped(fmt.Sprintf("- %s: %d entries", capitalizeFirst(string(t)), stats.CountsByType[t]), 12, "")
	}
}

func (d *pdfDoc) writeEntry(ordinal int, e domain.Entry, opts PDFOptions) {
	d.breakIfNeeded(60)

	d.writeWrapped(fmt.Sprintf("%d. %s", ordinal, e.Title), 16, "B")
	d.pdf.Ln(2)

	d.writeWrapped(fmt.Sprintf("Type: %s | Rating: %d/5", capitalizeFirst(string(e.Type)), e.Rating), 11, "")
	d.drawStars(e.Rating)
	d.writeWrapped("Date: "+longDate(e.Date), 11, "")
	d.writeWrapped("Location: "+e.Location, 11, "")

	if e.Description != "" {
		d.pdf.Ln(2)
		d.writeWrapped("Description:", 11, "B")
		d.writeWrapped(e.Description, 11, "")
	}
	if e.Notes != "" {
		d.pdf.Ln(2)
		d.writeWrapped("Notes:", 11, "B")
		d.writeWrapped(e.Notes, 11, "")
	}
	d.pdf.Ln(4)

	if opts.IncludeMaps {
		if pos, ok := e.Resolve(); ok {
			d.breakIfNeeded(pdfMapHeight + 10)
			d.drawMapThumbnail(pos, e.Title)
		}
	}

	if opts.IncludePhotos && len(e.Photos) > 0 {
		d.breakIfNeeded(pdfPhotoHght + 15)
		d.writeWrapped(fmt.Sprintf("Photos (%d):", len(e.Photos)), 11, "B")
		d.pdf.Ln(2)
		d.drawPhotoRows(e.Photos)
	}

	// Separator between entry sections.
	d.pdf.Ln(3)
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(200, 200, 200)
	d.pdf.Line(pdfMargin, y, d.pageW-pdfMargin, y)
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.Ln(8)
}

// drawStars renders the five-star rating row as vector glyphs: filled stars
// up to the rating, outlines for the rest. The built-in PDF fonts have no
// star glyph, so the shapes are drawn directly.
func (d *pdfDoc) drawStars(rating int) {
	const size = 2.2
	x := pdfMargin + size
	y := d.pdf.GetY() + size + 1

	d.pdf.SetFillColor(240, 180, 0)
	d.pdf.SetDrawColor(240, 180, 0)
	for i := 0; i < 5; i++ {
		style := "D"
		if i < rating {
			style = "F"
		}
		d.pdf.Polygon(starPoints(x, y, size), style)
		x += size*2 + 1.5
	}
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.SetY(y + size + 1.5)
}

// starPoints returns the ten vertices of a five-pointed star centered at
// (cx, cy) with outer radius r.
func starPoints(cx, cy, r float64) []fpdf.PointType {
	pts := make([]fpdf.PointType, 0, 10)
	inner := r * 0.42
	for i := 0; i < 10; i++ {
		radius := r
		if i%2 == 1 {
			radius = inner
		}
		angle := float64(i)*math.Pi/5 - math.Pi/2
		pts = append(pts, fpdf.PointType{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// drawMapThumbnail draws the placeholder map used when no tile service is
// reachable at generation time: a framed panel with a center marker and the
// coordinates as a caption.
func (d *pdfDoc) drawMapThumbnail(pos domain.LatLng, title string) {
	pdf := d.pdf
	x, y := pdfMargin, pdf.GetY()

	pdf.SetFillColor(230, 243, 255)
	pdf.Rect(x, y, pdfMapWidth, pdfMapHeight, "F")
	pdf.SetDrawColor(180, 200, 220)
	pdf.Rect(x, y, pdfMapWidth, pdfMapHeight, "D")
	pdf.SetDrawColor(0, 0, 0)

	pdf.SetFillColor(255, 68, 68)
	pdf.Circle(x+pdfMapWidth/2, y+pdfMapHeight/2, 2.5, "F")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(x, y+2)
	pdf.CellFormat(pdfMapWidth, 5, d.tr(title), "", 0, "C", false, 0, "")
	pdf.SetXY(x, y+pdfMapHeight-7)
	pdf.CellFormat(pdfMapWidth, 5, fmt.Sprintf("%.4f, %.4f", pos.Lat, pos.Lng), "", 0, "C", false, 0, "")

	pdf.SetY(y + pdfMapHeight + 6)
}

// drawPhotoRows lays photos out two per row with filename captions.
// Photos whose data cannot be decoded as JPEG, PNG, or GIF are skipped
// rather than failing the whole document.
func (d *pdfDoc) drawPhotoRows(photos []domain.Photo) {
	pdf := d.pdf
	col := 0
	rowY := pdf.GetY()

	for _, p := range photos {
		imgType, ok := probeImage(p.Data)
		if !ok {
			continue
		}
		if col == 2 {
			col = 0
			rowY += pdfPhotoHght + 10
		}
		if col == 0 {
			pdf.SetY(rowY)
			d.breakIfNeeded(pdfPhotoHght + 10)
			rowY = pdf.GetY()
		}

		x := pdfMargin + float64(col)*(pdfPhotoWidth+10)
		opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: false}
		pdf.RegisterImageOptionsReader(p.ID, opts, bytes.NewReader(p.Data))
		pdf.ImageOptions(p.ID, x, rowY, pdfPhotoWidth, pdfPhotoHght, false, opts, 0, "")

		if p.Name != "" {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetXY(x, rowY+pdfPhotoHght+1)
			pdf.CellFormat(pdfPhotoWidth, 4, d.tr(p.Name), "", 0, "C", false, 0, "")
		}
		col++
	}
	pdf.SetY(rowY + pdfPhotoHght + 10)
}

// probeImage sniffs the image format and reports the fpdf image type name.
// Decoding the header up front keeps one corrupt photo from poisoning the
// whole document, since fpdf errors are sticky.
func probeImage(data []byte) (string, bool) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	switch format {
	case "jpeg":
		return "JPG", true
	case "png":
		return "PNG", true
	case "gif":
		return "GIF", true
	}
	return "", false
}

// longDate renders a YYYY-MM-DD date in long form ("May 1, 2024"),
// falling back to the input when it does not parse.
func longDate(date string) string {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return date
	}
	return d.Format("January 2, 2006")
}
