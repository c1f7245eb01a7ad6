// Package badge renders the QR badges handed to employees.
package badge

import (
	"net/http"

	"workforce/backend/foundation/web"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

const size = 256

// Generate encodes content into a PNG QR code.
func Generate(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "encoding qr code"), http.StatusInternalServerError)
	}
	return png, nil
}
