package session

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Claims is the identity attached to one request. It is never persisted.
type Claims struct {
	CpfCnpj        string `json:"cpfCnpj,omitempty"`
	Crp            string `json:"crp,omitempty"`
	PatientID      *int64 `json:"patientId,omitempty"`
	ResponsibleCrp string `json:"responsibleCrp,omitempty"`
}

type contextKey string

const claimsKey contextKey = "session_claims"

// FromMap copies the four session attributes out of a decoded claim set.
// Values of an unexpected type are treated as absent.
func FromMap(m map[string]any) Claims {
	return Claims{
		CpfCnpj:        claimString(m["cpfCnpj"]),
		Crp:            claimString(m["crp"]),
		PatientID:      claimInt(m["patientId"]),
		ResponsibleCrp: claimString(m["responsibleCrp"]),
	}
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the zero Claims when the context carries none.
func ClaimsFrom(ctx context.Context) Claims {
	c, _ := ctx.Value(claimsKey).(Claims)
	return c
}

func claimString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	}
	return ""
}

func claimInt(v any) *int64 {
	var id int64
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) {
			return nil
		}
		id = int64(val)
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil
		}
		id = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil
		}
		id = n
	default:
		return nil
	}
	return &id
}
