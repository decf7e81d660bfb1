// Package deps installs pinned third-party libraries into the project's
// vendor directory by cloning them and running their native CMake install.
package deps

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Dependency is the recipe for one vendored library.
type Dependency struct {
	// Name is the directory below third_party the library is installed to.
	Name string
	// Remote is the clone URL.
	Remote string
	// Tag is the pinned release tag, a semantic version such as v2.13.10.
	Tag string
	// CheckoutDir is the clone directory below the scratch directory.
	CheckoutDir string
	// Options are boolean CMake cache entries passed at configure time.
	Options map[string]bool
}

// Catch2 is the unit test framework used by the C++ test suites.
var Catch2 = Dependency{
	Name:        "catch2",
	Remote:      "https://github.com/catchorg/Catch2.git",
	Tag:         "v2.13.10",
	CheckoutDir: "Catch2",
	Options: map[string]bool{
		"BUILD_TESTING": false,
	},
}

// All lists the dependencies installed by a default run.
var All = []Dependency{Catch2}

// Validate reports recipe errors before any work is done.
func (d Dependency) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("dependency has no name")
	case d.Remote == "":
		return fmt.Errorf("%s: no remote", d.Name)
	case !semver.IsValid(d.Tag):
		return fmt.Errorf("%s: tag %q is not a pinned semantic version", d.Name, d.Tag)
	case semver.Canonical(d.Tag) != d.Tag:
		return fmt.Errorf("%s: tag %q must be a full version like %s", d.Name, d.Tag, semver.Canonical(d.Tag))
	}
	return nil
}

func (d Dependency) checkoutDir() string {
	if d.CheckoutDir != "" {
		return d.CheckoutDir
	}
	return d.Name
}

func (d Dependency) String() string {
	return d.Name + "@" + d.Tag
}
