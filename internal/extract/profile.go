package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dobrakmato/messenger-stats/internal/decode"
)

// ErrNoProfileName is returned when the profile document parsed but
// carries no usable full name.
var ErrNoProfileName = errors.New("profile document has no full name")

type profileDoc struct {
	Profile struct {
		Name struct {
			FullName string `json:"full_name"`
		} `json:"name"`
	} `json:"profile"`
}

// ProfileName extracts the archive owner's display name from the profile
// metadata document, after the same decode-and-strip treatment as every
// other structured source.
func ProfileName(raw []byte) (string, error) {
	cleaned, err := decode.CleanJSON(raw)
	if err != nil {
		return "", fmt.Errorf("profile document: %w", err)
	}
	var doc profileDoc
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return "", fmt.Errorf("profile document: %w", err)
	}
	name := strings.TrimSpace(doc.Profile.Name.FullName)
	if name == "" {
		return "", ErrNoProfileName
	}
	return name, nil
}
