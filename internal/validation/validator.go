package validation

import (
	"reflect"
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	// mobile numbers: 05, 06 or 07 followed by eight digits
	phonePattern = regexp.MustCompile(`^0[567][0-9]{8}$`)
	pixelPattern = regexp.MustCompile(`^\d{15,16}$`)
)

// IsPhone reports whether s is a valid customer mobile number.
func IsPhone(s string) bool { return phonePattern.MatchString(s) }

// IsPixelID reports whether s is a valid Facebook pixel id.
func IsPixelID(s string) bool { return pixelPattern.MatchString(s) }

// New returns a validator with the storefront tags registered:
// "phone" and "pixelid", plus struct-level checks for catalog payloads.
// Field names in errors follow the json tags.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validatorv10.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("pixelid", func(fl validatorv10.FieldLevel) bool {
		return IsPixelID(fl.Field().String())
	})

	v.RegisterStructValidation(productStructValidation, ProductRequest{})

	return v
}

// productStructValidation checks that a compare-at price, when given, is above
// the selling price, and that quantity offers are not repeated.
func productStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(ProductRequest)

	if req.CompareAtPrice != nil && *req.CompareAtPrice <= req.BasePrice {
		sl.ReportError(req.CompareAtPrice, "compare_at_price", "CompareAtPrice", "gt_base_price", "")
	}

	seen := map[int]bool{}
	for _, o := range req.Offers {
		if seen[o.Quantity] {
			sl.ReportError(req.Offers, "offers", "Offers", "unique_quantity", "")
			return
		}
		seen[o.Quantity] = true
	}
}
