// Package naming checks and builds the hierarchical names of the bring-up
// components, such as "SDRAM.EMC" or "SoC.Emc[1]".
package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// NameMustBeValid panics if name does not follow the naming convention.
// Elements are separated by dots, start with a capital letter, hold only
// letters and digits, and may carry one or more [index] suffixes.
func NameMustBeValid(name string) {
	for _, elem := range strings.Split(name, ".") {
		if err := checkElement(elem); err != nil {
			panic(fmt.Sprintf("name %q is not valid: %v", name, err))
		}
	}
}

func checkElement(elem string) error {
	base, rest, _ := strings.Cut(elem, "[")

	if base == "" {
		return fmt.Errorf("empty element")
	}

	if base[0] < 'A' || base[0] > 'Z' {
		return fmt.Errorf("element %q must start with a capital letter", base)
	}

	for _, c := range base {
		if !isAlnum(c) {
			return fmt.Errorf("element %q must not contain %q", base, c)
		}
	}

	if rest == "" && !strings.Contains(elem, "[") {
		return nil
	}

	for _, idx := range strings.Split("["+rest, "[")[1:] {
		digits, ok := strings.CutSuffix(idx, "]")
		if !ok {
			return fmt.Errorf("unmatched bracket in %q", elem)
		}

		if _, err := strconv.Atoi(digits); err != nil {
			return fmt.Errorf("index %q of %q is not a number", digits, elem)
		}
	}

	return nil
}

func isAlnum(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// BuildName joins a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex joins a parent name and an indexed element name.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
