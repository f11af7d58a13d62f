package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var nifPattern = regexp.MustCompile(`^[0-9]{9}$`)

// ValidateNIF checks a Portuguese tax number: nine digits with a valid
// mod-11 check digit.
func ValidateNIF(nif string) bool {
	if !nifPattern.MatchString(nif) {
		return false
	}

	sum := 0
	for i := 0; i < 8; i++ {
		digit, _ := strconv.Atoi(string(nif[i]))
		sum += digit * (9 - i)
	}

	check := 11 - (sum % 11)
	if check >= 10 {
		check = 0
	}

	last, _ := strconv.Atoi(string(nif[8]))
	return check == last
}

func ValidatePhone(phone string) (bool, error) {
	phonePatterns := []string{
		`^\+3519\d{8}$`, // +351 + mobile
		`^\+3512\d{8}$`, // +351 + landline
		`^9\d{8}$`,      // domestic mobile
		`^2\d{8}$`,      // domestic landline
	}

	for _, pattern := range phonePatterns {
		if matched, _ := regexp.MatchString(pattern, phone); matched {
			return true, nil
		}
	}
	return false, fmt.Errorf("phone format incorrect")
}

func ValidatePlate(plate string) bool {
	// Portuguese plate formats across issue periods: AA-00-00, 00-00-AA, 00-AA-00, AA-00-AA
	patterns := []string{
		`^[A-Z]{2}-[0-9]{2}-[0-9]{2}$`,
		`^[0-9]{2}-[0-9]{2}-[A-Z]{2}$`,
		`^[0-9]{2}-[A-Z]{2}-[0-9]{2}$`,
		`^[A-Z]{2}-[0-9]{2}-[A-Z]{2}$`,
	}
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, plate); matched {
			return true
		}
	}
	return false
}
