package pattern_test

import (
	"testing"

	"github.com/abdidvp/archguard/internal/domain/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_RegexIsDefault(t *testing.T) {
	m, err := pattern.Compile("^src/domain/")
	require.NoError(t, err)

	assert.True(t, m.Match("src/domain/user"))
	assert.False(t, m.Match("src/infrastructure/db"))
	assert.False(t, m.Match("lib/src/domain/user"))
	assert.Equal(t, "^src/domain/", m.String())
}

func TestCompile_ExplicitRegexPrefix(t *testing.T) {
	m, err := pattern.Compile("regex:(^|/)repositories/")
	require.NoError(t, err)

	assert.True(t, m.Match("src/repositories/userRepo"))
	assert.True(t, m.Match("repositories/x"))
	assert.False(t, m.Match("src/repository/x"))
}

func TestCompile_InvalidRegex(t *testing.T) {
	_, err := pattern.Compile("^src/(domain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestCompile_Glob(t *testing.T) {
	m, err := pattern.Compile("glob:src/*/index")
	require.NoError(t, err)
	assert.True(t, m.Match("src/api/index"))
	assert.False(t, m.Match("src/api/v1/index"), "single star must not cross '/'")

	deep, err := pattern.Compile("glob:src/**")
	require.NoError(t, err)
	assert.True(t, deep.Match("src/api/v1/index"))
	assert.False(t, deep.Match("lib/api"))
}

func TestCompile_InvalidGlob(t *testing.T) {
	_, err := pattern.Compile("glob:src/[a")
	require.Error(t, err)
}

func TestCompile_ArchUnitPackagePattern(t *testing.T) {
	cases := []struct {
		pattern string
		id      string
		want    bool
	}{
		{"..domain..", "com.acme.domain.User", true},
		{"..domain..", "com.acme.domain", true},
		{"..domain..", "domain.User", true},
		{"..domain..", "com.acme.domainx.User", false},
		{"..domain..", "com.acme.application.UserService", false},
		{"com.acme..", "com.acme.web.Controller", true},
		{"com.acme..", "org.acme.web.Controller", false},
		{"..service", "com.acme.service", true},
		{"..service", "com.acme.service.Impl", false},
		{"package:com..api", "com.acme.api", true},
		{"..domain..", "internal/domain/order", true},
		{"..*Controller", "com.acme.web.UserController", true},
	}
	for _, tc := range cases {
		m, err := pattern.Compile(tc.pattern)
		require.NoError(t, err, tc.pattern)
		assert.Equal(t, tc.want, m.Match(tc.id), "%s ~ %s", tc.pattern, tc.id)
	}
}

func TestCompile_Namespace(t *testing.T) {
	m, err := pattern.Compile("namespace:YourProject.Domain")
	require.NoError(t, err)

	assert.True(t, m.Match("YourProject.Domain"))
	assert.True(t, m.Match("YourProject.Domain.Orders.Order"))
	assert.False(t, m.Match("YourProject.DomainEvents"))
	assert.False(t, m.Match("YourProject.Infrastructure"))
}

func TestCompile_EmptyNamespace(t *testing.T) {
	_, err := pattern.Compile("namespace: ")
	require.Error(t, err)
}

func TestCompile_Exact(t *testing.T) {
	m, err := pattern.Compile("exact:src/main")
	require.NoError(t, err)
	assert.True(t, m.Match("src/main"))
	assert.False(t, m.Match("src/main/x"))
}

func TestCompiler_CachesMatchers(t *testing.T) {
	c := pattern.NewCompiler(2)

	first, err := c.Compile("^a")
	require.NoError(t, err)
	second, err := c.Compile("^a")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = c.Compile("^b")
	require.NoError(t, err)
	_, err = c.Compile("^c")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len(), "cache must stay bounded")
}

func TestCompiler_DoesNotCacheErrors(t *testing.T) {
	c := pattern.NewCompiler(0)
	_, err := c.Compile("(")
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}
