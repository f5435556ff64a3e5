package validation

import (
	"regexp"
	"strings"
	"unicode"

	"ayurdiet-backend/internal/prakriti"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, spaces and common punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L} .'/&(),-]+$`)

	// E164-like phone: optional +, 7-15 digits
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("dosha", Dosha)
	_ = v.RegisterValidation("prakriti", PrakritiLabel)
}

// ValidName rejects digits and most symbols. Empty passes; pair with required.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

func ValidPhone(fl validator.FieldLevel) bool {
	val := strings.ReplaceAll(fl.Field().String(), " ", "")
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// NoEmoji rejects supplementary-plane runes and symbol categories.
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// Dosha accepts a single category: vata, pitta or kapha.
func Dosha(fl validator.FieldLevel) bool {
	_, err := prakriti.ParseCategory(fl.Field().String())
	return err == nil
}

// PrakritiLabel accepts a label such as "Vata" or "Vata-pitta". Empty passes.
func PrakritiLabel(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := prakriti.ParseLabel(val)
	return err == nil
}
