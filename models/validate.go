package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fenilmodi00/ipo-tracker/shared"
	"github.com/shopspring/decimal"
)

// Validators in this file turn a raw request payload (field name to
// string/number/absent, built once at the HTTP boundary) into either a typed
// entity ready for persistence or a ValidationError listing every offending
// field. Insert validators only ever read writable fields, so server-generated
// ones (id, createdAt) and unknown keys are stripped by construction. Update
// validators accept any subset of writable fields and emit a column-to-value
// change map for partial updates.

const dateLayout = "2006-01-02"

func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// coerceUint accepts JSON numbers, numeric strings and already-typed ids.
// Every form is held to the same 32-bit bound the string path parses with.
func coerceUint(v any) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) || n < 0 || n > math.MaxUint32 {
			return 0, false
		}
		return uint(n), true
	case int:
		if n < 0 || int64(n) > math.MaxUint32 {
			return 0, false
		}
		return uint(n), true
	case uint:
		if uint64(n) > math.MaxUint32 {
			return 0, false
		}
		return n, true
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(n), 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

func coerceDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

func coerceDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ValidateInsertCompany builds a Company from a raw payload.
func ValidateInsertCompany(raw map[string]any) (*Company, *shared.ValidationError) {
	verr := shared.NewValidationError()
	company := &Company{}

	if v, ok := raw["name"]; !ok || v == nil {
		verr.Add("name", "is required")
	} else if s, ok := coerceString(v); !ok || strings.TrimSpace(s) == "" {
		verr.Add("name", "must be a non-empty string")
	} else {
		company.Name = s
	}

	if v, ok := raw["logo"]; ok && v != nil {
		if s, ok := coerceString(v); ok {
			company.Logo = &s
		} else {
			verr.Add("logo", "must be a string")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return company, nil
}

// ValidateUpdateCompany builds a partial column change set from a raw payload.
func ValidateUpdateCompany(raw map[string]any) (map[string]any, *shared.ValidationError) {
	verr := shared.NewValidationError()
	changes := map[string]any{}

	if v, ok := raw["name"]; ok {
		if s, sok := coerceString(v); sok && strings.TrimSpace(s) != "" {
			changes["company_name"] = s
		} else {
			verr.Add("name", "must be a non-empty string")
		}
	}
	if v, ok := raw["logo"]; ok {
		if v == nil {
			changes["company_logo"] = nil
		} else if s, sok := coerceString(v); sok {
			changes["company_logo"] = s
		} else {
			verr.Add("logo", "must be a string")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return changes, nil
}

// ipoStringFields maps writable IPO varchar payload fields to their columns.
var ipoStringFields = map[string]string{
	"priceBand": "price_band",
	"issueSize": "issue_size",
	"issueType": "issue_type",
}

var ipoDateFields = map[string]string{
	"openDate":    "open_date",
	"closeDate":   "close_date",
	"listingDate": "listing_date",
}

var ipoDecimalFields = map[string]string{
	"ipoPrice":           "ipo_price",
	"listingPrice":       "listing_price",
	"listingGain":        "listing_gain",
	"currentMarketPrice": "current_market_price",
	"currentReturn":      "current_return",
}

// ValidateInsertIPO builds an IPO from a raw payload. Status defaults to
// Upcoming when absent.
func ValidateInsertIPO(raw map[string]any) (*IPO, *shared.ValidationError) {
	verr := shared.NewValidationError()
	ipo := &IPO{Status: StatusUpcoming}

	if v, ok := raw["companyId"]; !ok || v == nil {
		verr.Add("companyId", "is required")
	} else if id, ok := coerceUint(v); !ok || id == 0 {
		verr.Add("companyId", "must be a positive integer")
	} else {
		ipo.CompanyID = id
	}

	for field := range ipoStringFields {
		if v, ok := raw[field]; ok && v != nil {
			if s, sok := coerceString(v); sok {
				val := s
				switch field {
				case "priceBand":
					ipo.PriceBand = &val
				case "issueSize":
					ipo.IssueSize = &val
				case "issueType":
					ipo.IssueType = &val
				}
			} else {
				verr.Add(field, "must be a string")
			}
		}
	}

	for field := range ipoDateFields {
		if v, ok := raw[field]; ok && v != nil {
			if t, tok := coerceDate(v); tok {
				val := t
				switch field {
				case "openDate":
					ipo.OpenDate = &val
				case "closeDate":
					ipo.CloseDate = &val
				case "listingDate":
					ipo.ListingDate = &val
				}
			} else {
				verr.Add(field, "must be a date (YYYY-MM-DD)")
			}
		}
	}

	for field := range ipoDecimalFields {
		if v, ok := raw[field]; ok && v != nil {
			if d, dok := coerceDecimal(v); dok {
				val := d
				switch field {
				case "ipoPrice":
					ipo.IPOPrice = &val
				case "listingPrice":
					ipo.ListingPrice = &val
				case "listingGain":
					ipo.ListingGain = &val
				case "currentMarketPrice":
					ipo.CurrentMarketPrice = &val
				case "currentReturn":
					ipo.CurrentReturn = &val
				}
			} else {
				verr.Add(field, "must be a number")
			}
		}
	}

	if v, ok := raw["status"]; ok && v != nil {
		if s, sok := coerceString(v); sok && IsValidStatus(s) {
			ipo.Status = s
		} else {
			verr.Add("status", "must be one of "+strings.Join(ValidStatuses, ", "))
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return ipo, nil
}

// ValidateUpdateIPO builds a partial column change set from a raw payload.
func ValidateUpdateIPO(raw map[string]any) (map[string]any, *shared.ValidationError) {
	verr := shared.NewValidationError()
	changes := map[string]any{}

	if v, ok := raw["companyId"]; ok {
		if id, iok := coerceUint(v); iok && id > 0 {
			changes["company_id"] = id
		} else {
			verr.Add("companyId", "must be a positive integer")
		}
	}

	for field, column := range ipoStringFields {
		if v, ok := raw[field]; ok {
			if v == nil {
				changes[column] = nil
			} else if s, sok := coerceString(v); sok {
				changes[column] = s
			} else {
				verr.Add(field, "must be a string")
			}
		}
	}

	for field, column := range ipoDateFields {
		if v, ok := raw[field]; ok {
			if v == nil {
				changes[column] = nil
			} else if t, tok := coerceDate(v); tok {
				changes[column] = t
			} else {
				verr.Add(field, "must be a date (YYYY-MM-DD)")
			}
		}
	}

	for field, column := range ipoDecimalFields {
		if v, ok := raw[field]; ok {
			if v == nil {
				changes[column] = nil
			} else if d, dok := coerceDecimal(v); dok {
				changes[column] = d
			} else {
				verr.Add(field, "must be a number")
			}
		}
	}

	if v, ok := raw["status"]; ok {
		if s, sok := coerceString(v); sok && IsValidStatus(s) {
			changes["status"] = s
		} else {
			verr.Add("status", "must be one of "+strings.Join(ValidStatuses, ", "))
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return changes, nil
}

// ValidateInsertDocument builds a Document from a raw payload.
func ValidateInsertDocument(raw map[string]any) (*Document, *shared.ValidationError) {
	verr := shared.NewValidationError()
	doc := &Document{}

	if v, ok := raw["ipoId"]; !ok || v == nil {
		verr.Add("ipoId", "is required")
	} else if id, ok := coerceUint(v); !ok || id == 0 {
		verr.Add("ipoId", "must be a positive integer")
	} else {
		doc.IPOID = id
	}

	if v, ok := raw["rhpPdf"]; ok && v != nil {
		if s, sok := coerceString(v); sok {
			doc.RHPPdf = &s
		} else {
			verr.Add("rhpPdf", "must be a string")
		}
	}
	if v, ok := raw["drhpPdf"]; ok && v != nil {
		if s, sok := coerceString(v); sok {
			doc.DRHPPdf = &s
		} else {
			verr.Add("drhpPdf", "must be a string")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return doc, nil
}

// ValidateUpdateDocument builds a partial column change set from a raw payload.
func ValidateUpdateDocument(raw map[string]any) (map[string]any, *shared.ValidationError) {
	verr := shared.NewValidationError()
	changes := map[string]any{}

	if v, ok := raw["ipoId"]; ok {
		if id, iok := coerceUint(v); iok && id > 0 {
			changes["ipo_id"] = id
		} else {
			verr.Add("ipoId", "must be a positive integer")
		}
	}
	for field, column := range map[string]string{"rhpPdf": "rhp_pdf", "drhpPdf": "drhp_pdf"} {
		if v, ok := raw[field]; ok {
			if v == nil {
				changes[column] = nil
			} else if s, sok := coerceString(v); sok {
				changes[column] = s
			} else {
				verr.Add(field, "must be a string")
			}
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return changes, nil
}
