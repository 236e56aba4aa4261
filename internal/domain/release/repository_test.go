package release

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/scoop-manifest/internal/failure"
)

// TestParseRepository covers valid identifiers and the rejected shapes.
func TestParseRepository(t *testing.T) {
	t.Parallel()

	repo, err := ParseRepository(" ikatson/rqbit ")
	require.NoError(t, err)
	require.Equal(t, Repository{Owner: "ikatson", Name: "rqbit"}, repo)
	require.Equal(t, "ikatson/rqbit", repo.String())
	require.Equal(t, "https://github.com/ikatson/rqbit", repo.Homepage())

	for _, bad := range []string{"", "rqbit", "/rqbit", "ikatson/", "a/b/c", "a/..", "a b/c", "a/b?x"} {
		_, err = ParseRepository(bad)
		require.ErrorIs(t, err, failure.ErrValidation, bad)
	}
}
