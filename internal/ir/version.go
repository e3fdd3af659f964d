package ir

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the GAPP IR schema version.
const Version = "1.2.0"

// CheckCompatible reports whether this IR version satisfies constraint,
// e.g. "^1.0" as declared by a program file. An empty constraint matches.
func CheckCompatible(constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v := semver.MustParse(Version)
	if !c.Check(v) {
		return fmt.Errorf("IR version %s does not satisfy %q", Version, constraint)
	}
	return nil
}
