package matching

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	salaryNoise  = strings.NewReplacer("₹", "", ",", "")
	salaryNumber = regexp.MustCompile(`[0-9]*\.?[0-9]+`)
)

// ExtractSalaryNum returns the first number found in a free-text salary,
// ignoring the rupee sign and thousands separators. It is only meant for
// sorting: "₹8,00,000 – 12,00,000" gives 800000. No number gives 0.
func ExtractSalaryNum(salary string) float64 {
	if salary == "" {
		return 0
	}

	raw := salaryNumber.FindString(salaryNoise.Replace(salary))
	if raw == "" {
		return 0
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return num
}
