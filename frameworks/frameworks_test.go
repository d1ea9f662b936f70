package frameworks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/modelgen/framework"
)

func TestForProjectType(t *testing.T) {
	f, ok := ForProjectType(framework.NPM)
	require.True(t, ok)
	assert.Equal(t, "Sequelize", f.DisplayName())
	assert.Equal(t, framework.NPM, f.ProjectType())

	_, ok = ForProjectType("MAVEN")
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, framework.NPM, Default().ProjectType())
}

func TestParseProjectType(t *testing.T) {
	pt, err := ParseProjectType("npm")
	require.NoError(t, err)
	assert.Equal(t, framework.NPM, pt)

	pt, err = ParseProjectType("")
	require.NoError(t, err)
	assert.Equal(t, framework.NPM, pt)

	_, err = ParseProjectType("gradle")
	assert.EqualError(t, err, `unknown project type "gradle"`)
}
