package validators

import "unicode"

// IsValidDNI acepta el formato argentino de 8 dígitos.
func IsValidDNI(dni string) bool {
	if len(dni) != 8 {
		return false
	}
	for _, r := range dni {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidLegajo exige un legajo no vacío, solo dígitos.
func IsValidLegajo(legajo string) bool {
	if legajo == "" {
		return false
	}
	for _, r := range legajo {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
