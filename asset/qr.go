/*
qr.go - QR payload encoding and label generation

PURPOSE:
  Assets are labeled with printed QR codes that resolve back to the
  inventory record. The payload is deliberately small and stable: the
  serial number plus the category, as JSON. Scanning hardware is out of
  scope - the system only sees the decoded text.

PAYLOAD FORMAT:
  {"serialNumber":"SN-1042","category":"Electronics"}

  The serial number is the lookup key; category is informational (it
  lets a handheld display something useful before the network round
  trip completes).

SEE ALSO:
  - types.go: ScanEvent (every decoded payload lookup is logged)
  - api: scan endpoint that resolves payloads to assets
*/
package asset

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRPayload is the structured content of an asset label.
type QRPayload struct {
	SerialNumber string `json:"serialNumber"`
	Category     string `json:"category"`
}

// Payload builds the QR payload for an asset. Uncategorized assets are
// labeled as such rather than with an empty string.
func (a Asset) Payload() QRPayload {
	category := a.Category
	if category == "" {
		category = "Uncategorized"
	}
	return QRPayload{SerialNumber: a.SerialNumber, Category: category}
}

// EncodePayload serializes a payload to the on-label JSON form.
func EncodePayload(p QRPayload) ([]byte, error) {
	return json.Marshal(p)
}

// DecodePayload parses decoded scanner text into a payload. A payload
// without a serial number cannot resolve an asset and is rejected.
func DecodePayload(data []byte) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return QRPayload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.SerialNumber == "" {
		return QRPayload{}, fmt.Errorf("%w: missing serial number", ErrInvalidPayload)
	}
	return p, nil
}

// QRCodePNG renders the asset's label as a PNG image of the given pixel
// size. Medium error correction matches what handheld scanners expect
// from printed labels.
func (a Asset) QRCodePNG(size int) ([]byte, error) {
	payload, err := EncodePayload(a.Payload())
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}
