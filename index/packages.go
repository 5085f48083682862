package index

import (
	"fmt"
	"strings"
)

// Package names one of the documentation sources held in the index.
type Package string

// The fixed set of documented packaging tools.
const (
	PackagePip    Package = "pip"
	PackageConda  Package = "conda"
	PackagePoetry Package = "poetry"
	PackageUV     Package = "uv"
)

var packages = []Package{PackagePip, PackageConda, PackagePoetry, PackageUV}

// Packages returns the documented packages in display order.
func Packages() []Package {
	out := make([]Package, len(packages))
	copy(out, packages)
	return out
}

// PackageNames returns Packages as plain strings, for schemas and flags.
func PackageNames() []string {
	out := make([]string, len(packages))
	for i, p := range packages {
		out[i] = string(p)
	}
	return out
}

// Valid reports whether p is one of the documented packages.
func (p Package) Valid() bool {
	for _, known := range packages {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePackage resolves a filter value. The empty string means no filter
// and yields an empty Package with a nil error.
func ParsePackage(s string) (Package, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	p := Package(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidPackage, s, strings.Join(PackageNames(), ", "))
	}
	return p, nil
}
