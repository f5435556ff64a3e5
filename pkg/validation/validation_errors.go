package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Auth fields
	"Email":    "Email",
	"Password": "Password",
	"FullName": "Full name",

	// Patient sign-up
	"Age":           "Age",
	"Gender":        "Gender",
	"Location":      "Location",
	"ContactNumber": "Contact number",

	// Dietitian sign-up
	"LicenseNumber":       "License number",
	"Qualification":       "Qualification",
	"SpecializationAreas": "Specialization areas",
	"YearsExperience":     "Years of experience",
	"ClinicName":          "Clinic name",
	"PreferredLanguages":  "Preferred languages",
	"PracticeType":        "Practice type",

	// Assessment
	"Constitution":       "Constitution answers",
	"Digestion":          "Digestion",
	"Energy":             "Energy",
	"Sleep":              "Sleep",
	"HealthGoals":        "Health goals",
	"DietaryPreferences": "Dietary preferences",
	"FoodOption":         "Food option",
	"SpiceLevel":         "Spice level",
	"MealTiming":         "Meal timing",
	"CookingStyle":       "Cooking style",

	// Dietitian onboarding
	"Name":           "Name",
	"Specialization": "Specialization",
	"Contact":        "Contact",
	"Address":        "Address",
	"Prakriti":       "Prakriti",
	"Condition":      "Condition",
}

// ValidationRules carries units for min/max messages
var ValidationRules = map[string]map[string]interface{}{
	"Age":             {"min": 1, "max": 120, "unit": "years"},
	"YearsExperience": {"min": 0, "max": 70, "unit": "years"},
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min", "gte":
		if unit, ok := unitFor(fieldName); ok {
			return fmt.Sprintf("%s: must be at least %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: select at least %s", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max", "lte":
		if unit, ok := unitFor(fieldName); ok {
			return fmt.Sprintf("%s: must be at most %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "uuid", "uuid4":
		return fmt.Sprintf("%s: must be a valid UUID", label)

	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces and common punctuation (. ' - /) allowed", label)

	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	case "dosha":
		return fmt.Sprintf("%s: must be one of: vata, pitta, kapha", label)

	case "prakriti":
		return fmt.Sprintf("%s: must be a constitution such as Vata or Vata-pitta", label)

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

func unitFor(fieldName string) (interface{}, bool) {
	rules, ok := ValidationRules[fieldName]
	if !ok {
		return nil, false
	}
	unit, ok := rules["unit"]
	return unit, ok
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
