package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"
	"strings"

	"worksmis/models"
	"worksmis/repository"
	"worksmis/utils"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// workQRPayload is the JSON encoded into a work package QR code.
type workQRPayload struct {
	ID            uint   `json:"id"`
	ReferenceCode string `json:"reference_code"`
	URL           string `json:"url,omitempty"`
}

func newWorkQRPayload(wp models.WorkPackageGorm, baseURL string) workQRPayload {
	p := workQRPayload{ID: wp.ID, ReferenceCode: wp.ReferenceCode}
	if baseURL != "" {
		p.URL = fmt.Sprintf("%s/api/works/%d", strings.TrimRight(baseURL, "/"), wp.ID)
	}
	return p
}

// addLabel draws text at the given baseline position.
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Regular8x16
	if bold {
		col = color.RGBA{30, 30, 30, 255}
		face = inconsolata.Bold8x16
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

func truncateLabel(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// qrCodeJPEG encodes the payload as a bare QR code JPEG of the given size.
func qrCodeJPEG(payload workQRPayload, size int) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, qr.Image(size), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderWorkPackageQR draws the QR code with a label block underneath.
func renderWorkPackageQR(wp models.WorkPackageGorm, baseURL string) ([]byte, error) {
	data, err := json.Marshal(newWorkQRPayload(wp, baseURL))
	if err != nil {
		return nil, err
	}
	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrImg := qr.Image(512)

	qrSize := qrImg.Bounds().Dy()
	padding := 30
	lineHeight := 28
	labels := [][2]string{
		{"Reference:", wp.ReferenceCode},
		{"Work:", truncateLabel(wp.WorkName, 30)},
		{"Scheme:", truncateLabel(wp.SchemeName, 30)},
		{"Period:", fmt.Sprintf("%d months / %d milestones", wp.PeriodMonths, wp.MilestoneCount)},
	}
	totalHeight := qrSize + padding + len(labels)*lineHeight + padding

	img := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

	separatorY := qrSize + padding/2
	for x := 0; x < qrSize; x++ {
		img.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
	}

	startY := qrSize + padding + lineHeight
	xPos := 20
	for i, l := range labels {
		addLabel(img, xPos, startY+i*lineHeight, l[0], true)
		addLabel(img, xPos+120, startY+i*lineHeight, l[1], false)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateWorkPackageQR godoc
// @Summary      Generate a labelled QR code for a work package
// @Tags         export
// @Produce      image/jpeg
// @Security     BearerAuth
// @Param        id   path      int  true  "Work package ID"
// @Success      200  {file}    file  "JPEG image"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/works/{id}/qr [get]
func GenerateWorkPackageQR(store WorkPackageStore, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		wp, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work package not found"})
			return
		}
		if err != nil {
			utils.Log.Error("Load work package failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work package"})
			return
		}

		img, err := renderWorkPackageQR(*wp, baseURL)
		if err != nil {
			utils.Log.Error("QR code generation failed", zap.Uint("id", id), zap.Error(err))
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}
		c.Data(http.StatusOK, "image/jpeg", img)
	}
}
