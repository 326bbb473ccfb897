package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// APIVersion is the builder contract version this host implements.
const APIVersion = "3.0"

// API is a parsed "<major>.<minor>" contract version.
type API struct {
	Major int
	Minor int
}

func (a API) String() string { return fmt.Sprintf("%d.%d", a.Major, a.Minor) }

// ParseAPI parses a contract version. The text must hold exactly one "."
// separating two integers.
func ParseAPI(s string) (API, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return API{}, fmt.Errorf("invalid API version %q: want <major>.<minor>", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return API{}, fmt.Errorf("invalid API major version %q: %w", s, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return API{}, fmt.Errorf("invalid API minor version %q: %w", s, err)
	}
	return API{Major: major, Minor: minor}, nil
}

// Compatible reports whether a builder declaring declared may serve a host
// requiring required. Majors must match; the builder's minor may be older
// but not newer.
func Compatible(required, declared string) bool {
	req, err := ParseAPI(required)
	if err != nil {
		return false
	}
	dec, err := ParseAPI(declared)
	if err != nil {
		return false
	}
	return dec.Major == req.Major && dec.Minor <= req.Minor
}

// declaredAPI returns the contract version an instance declares, if any.
func declaredAPI(instance any) string {
	if v, ok := instance.(interface{ API() string }); ok {
		return v.API()
	}
	return ""
}

// CheckCompatibility verifies instance implements the builder contract with a
// version compatible with required.
func CheckCompatibility(instance any, required string) (Builder, error) {
	declared := declaredAPI(instance)
	b, ok := instance.(Builder)
	if !ok || !Compatible(required, declared) {
		return nil, incompatible(required, declared)
	}
	return b, nil
}
