package enums

import "fmt"

// GeoKind identifies one of the reference entity tables in the geo hierarchy.
type GeoKind string

const (
	GeoKindCity     GeoKind = "city"
	GeoKindArea     GeoKind = "area"
	GeoKindColony   GeoKind = "colony"
	GeoKindCategory GeoKind = "category"
)

var validGeoKinds = []GeoKind{
	GeoKindCity,
	GeoKindArea,
	GeoKindColony,
	GeoKindCategory,
}

// String implements fmt.Stringer.
func (k GeoKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known GeoKind.
func (k GeoKind) IsValid() bool {
	for _, candidate := range validGeoKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// RequiresParent reports whether entities of this kind sit under a parent level.
func (k GeoKind) RequiresParent() bool {
	return k == GeoKindArea || k == GeoKindColony
}

// ParseGeoKind converts raw input into a GeoKind.
func ParseGeoKind(value string) (GeoKind, error) {
	for _, candidate := range validGeoKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid geo entity kind %q", value)
}
