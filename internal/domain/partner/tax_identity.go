package partner

import (
	"regexp"
	"strings"

	"github.com/stockbook/backend/internal/domain/shared"
)

// TaxIdentity carries the statutory identifiers referenced on invoices.
// All fields are optional; when present they must match the official format.
type TaxIdentity struct {
	GSTIN     string `gorm:"type:varchar(15)"`
	PAN       string `gorm:"type:varchar(10)"`
	StateCode string `gorm:"type:varchar(2);column:state_code"`
}

var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	statePattern = regexp.MustCompile(`^[0-9]{2}$`)
)

// NewTaxIdentity validates and normalizes the statutory identifiers
func NewTaxIdentity(gstin, pan, stateCode string) (TaxIdentity, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	pan = strings.ToUpper(strings.TrimSpace(pan))
	stateCode = strings.TrimSpace(stateCode)

	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return TaxIdentity{}, shared.NewDomainError("INVALID_GSTIN", "GSTIN does not match the statutory format")
	}
	if pan != "" && !panPattern.MatchString(pan) {
		return TaxIdentity{}, shared.NewDomainError("INVALID_PAN", "PAN does not match the statutory format")
	}
	if stateCode != "" && !statePattern.MatchString(stateCode) {
		return TaxIdentity{}, shared.NewDomainError("INVALID_STATE_CODE", "State code must be a two digit code")
	}
	// A GSTIN embeds the state code in its first two digits
	if gstin != "" && stateCode == "" {
		stateCode = gstin[:2]
	}
	return TaxIdentity{GSTIN: gstin, PAN: pan, StateCode: stateCode}, nil
}
