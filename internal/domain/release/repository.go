package release

import (
	"strings"

	"github.com/oshokin/scoop-manifest/internal/failure"
)

// Repository identifies a GitHub project.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses an "owner/name" identifier.
func ParseRepository(s string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || !validSegment(owner) || !validSegment(name) {
		return Repository{}, failure.New(failure.Validation, "repository %q must look like owner/name", s)
	}

	return Repository{Owner: owner, Name: name}, nil
}

// String returns "owner/name".
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// Homepage returns the project page on github.com.
func (r Repository) Homepage() string {
	return "https://github.com/" + r.String()
}

func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}

	return !strings.ContainsAny(s, "/\\ \t\r\n?#")
}
