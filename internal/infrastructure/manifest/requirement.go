package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is one dependency declaration: a package name with an
// optional semver constraint, e.g. "toolchain@^1.4" or "linter".
type Requirement struct {
	Name       string
	Constraint *semver.Constraints
	raw        string
}

// ParseRequirement splits a declaration on the first "@" and validates the
// constraint part.
func ParseRequirement(s string) (Requirement, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Requirement{}, fmt.Errorf("empty requirement")
	}
	name, constraint, hasConstraint := strings.Cut(raw, "@")
	name = strings.TrimSpace(name)
	if name == "" {
		return Requirement{}, fmt.Errorf("requirement %q has no package name", raw)
	}
	req := Requirement{Name: name, raw: raw}
	if hasConstraint {
		c, err := semver.NewConstraint(strings.TrimSpace(constraint))
		if err != nil {
			return Requirement{}, fmt.Errorf("requirement %q: %w", raw, err)
		}
		req.Constraint = c
	}
	return req, nil
}

func (r Requirement) String() string { return r.raw }

// Matches reports whether version satisfies the requirement's constraint.
// An unconstrained requirement matches any parseable version.
func (r Requirement) Matches(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	if r.Constraint == nil {
		return true
	}
	return r.Constraint.Check(v)
}
