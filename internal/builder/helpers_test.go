package builder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testBuilder struct {
	*Base
}

type fallbackBuilder struct {
	*Base
}

// notABuilder declares a valid version but does not embed Base.
type notABuilder struct{}

func (notABuilder) API() string { return APIVersion }

func newTestBuilder(api string) func() Builder {
	return func() Builder { return &testBuilder{Base: NewBase(WithAPI(api))} }
}

func testModules(t *testing.T) *Modules {
	t.Helper()
	m := NewModules()
	require.NoError(t, m.Register(Module{
		Name: DefaultModule,
		New:  func() (any, error) { return &fallbackBuilder{Base: NewBase()}, nil },
	}))
	require.NoError(t, m.Register(Module{
		Name: "custom",
		New:  func() (any, error) { return &testBuilder{Base: NewBase()}, nil },
	}))
	require.NoError(t, m.Register(Module{
		Name: "broken",
		New:  func() (any, error) { return nil, errors.New("missing dependency") },
	}))
	return m
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
