package workspace

import (
	"encoding/json"

	"github.com/dhnext/launchpad/internal/domain/compliance"
)

// Fixed per-tenant keys
const (
	KeyComplianceResult = "complianceResult"
	KeyConfluenceLink   = "confluenceLink"
)

// InitialData is what the panel loads on open. Nil fields encode as JSON null.
type InitialData struct {
	ComplianceResult *compliance.Result `json:"complianceResult"`
	ConfluenceLink   *string            `json:"confluenceLink"`
}

// EncodeResult serializes a result for the store
func EncodeResult(r compliance.Result) ([]byte, error) {
	return json.Marshal(r)
}

// EncodeLink serializes a link as a JSON string
func EncodeLink(link string) ([]byte, error) {
	return json.Marshal(link)
}
