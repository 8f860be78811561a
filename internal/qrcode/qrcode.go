// Package qrcode renders a contact as a vCard QR code, either as a PNG for the
// API or as block characters for the terminal client.
package qrcode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/Varun5711/contactkeeper/internal/cache"
	"github.com/Varun5711/contactkeeper/internal/models"
)

const DefaultSize = 256

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// VCard encodes the contact as a vCard 3.0 document. Empty fields are omitted.
func VCard(c *models.Contact) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCARD\r\n")
	sb.WriteString("VERSION:3.0\r\n")
	fmt.Fprintf(&sb, "FN:%s\r\n", vcardEscaper.Replace(c.Name))
	fmt.Fprintf(&sb, "N:;%s;;;\r\n", vcardEscaper.Replace(c.Name))

	if c.Email != "" {
		fmt.Fprintf(&sb, "EMAIL;TYPE=INTERNET:%s\r\n", vcardEscaper.Replace(c.Email))
	}
	if c.Phone != "" {
		fmt.Fprintf(&sb, "TEL;TYPE=%s:%s\r\n", telType(c.Type), vcardEscaper.Replace(c.Phone))
	}
	if c.Type != "" {
		fmt.Fprintf(&sb, "CATEGORIES:%s\r\n", vcardEscaper.Replace(c.Type))
	}

	sb.WriteString("END:VCARD\r\n")
	return sb.String()
}

func telType(contactType string) string {
	if strings.EqualFold(contactType, models.ContactTypeProfessional) {
		return "WORK"
	}
	return "CELL"
}

// Renderer memoizes PNGs by vCard content and size, so an edited contact never
// hits a stale image.
type Renderer struct {
	pngs *cache.LRUCache[[]byte]
}

func NewRenderer(cacheSize int) *Renderer {
	return &Renderer{pngs: cache.NewLRUCache[[]byte](cacheSize)}
}

func (r *Renderer) PNG(c *models.Contact, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	card := VCard(c)
	sum := sha256.Sum256([]byte(card))
	key := hex.EncodeToString(sum[:]) + ":" + strconv.Itoa(size)

	return r.pngs.GetOrCreate(key, func() ([]byte, error) {
		png, err := qrcode.Encode(card, qrcode.Medium, size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		return png, nil
	})
}

func (r *Renderer) Stats() cache.Stats {
	return r.pngs.Stats()
}

func GenerateQRCodeASCII(c *models.Contact) (string, error) {
	qr, err := qrcode.New(VCard(c), qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	bitmap := qr.Bitmap()

	var sb strings.Builder

	// two bitmap rows per text line, using half blocks
	for i := 0; i < len(bitmap); i += 2 {
		for j := 0; j < len(bitmap[i]); j++ {
			top := bitmap[i][j]
			bottom := i+1 < len(bitmap) && bitmap[i+1][j]
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
