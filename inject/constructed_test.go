package inject_test

import (
	"errors"
	"testing"

	"github.com/sghaida/rdi/inject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Build
// -----------------------------------------------------------------------------
//

// TestBuild_RecordsServiceResolvedValues verifies Build returns the typed
// instance plus a record of what the lookup injected, and nothing more.
func TestBuild_RecordsServiceResolvedValues(t *testing.T) {
	t.Parallel()

	db := &DB{DSN: "postgres://"}
	lookup := inject.NewMapLookup().Provide(db)
	in := inject.New(lookup)

	logger := &Logger{Level: "info"}
	c, err := inject.Build[Report](in, reportType, logger)
	require.NoError(t, err)
	require.NotNil(t, c)

	require.NotNil(t, c.Value())
	assert.Same(t, db, c.Value().DB)
	assert.Same(t, logger, c.Value().Logger)

	// Only the service-resolved parameter is recorded; the explicit
	// logger is the caller's business.
	dbKey := inject.KeyFor[*DB]()
	assert.True(t, c.Has(dbKey))
	assert.False(t, c.Has(inject.KeyFor[*Logger]()))
	assert.Len(t, c.Deps, 1)

	got, ok := inject.GetAs[Report, *DB](c, dbKey)
	require.True(t, ok)
	assert.Same(t, db, got)
}

// TestBuild_Failures verifies the nil-type guard, failure wrapping, and the
// wrong-target guard.
func TestBuild_Failures(t *testing.T) {
	t.Parallel()

	in := inject.New(nil)

	_, err := inject.Build[Report](in, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, inject.ErrNilType))

	_, err = inject.Build[Report](in, reportType)
	require.Error(t, err)
	var outer *inject.InstantiationError
	assert.True(t, errors.As(err, &outer))

	_, err = inject.Build[Flags](in, clockType)
	require.Error(t, err)
	var wrong inject.WrongTargetTypeError
	require.True(t, errors.As(err, &wrong))
	assert.Equal(t, "*inject_test.Flags", wrong.Want)
	assert.Equal(t, "*inject_test.Clock", wrong.Got)
}

//
// -----------------------------------------------------------------------------
// Accessors — Has/GetAny/GetAs/TryGetAs/MustGetAs, plus nil/guard branches
// -----------------------------------------------------------------------------
//

// TestAccessors_TypedRetrieval covers the typed accessors on a populated
// record.
func TestAccessors_TypedRetrieval(t *testing.T) {
	t.Parallel()

	db := &DB{DSN: "sqlite"}
	logger := &Logger{Level: "info"}
	lookup := inject.NewMapLookup().Provide(db, logger)
	in := inject.New(lookup)

	c, err := inject.Build[Report](in, reportType)
	require.NoError(t, err)

	dbKey := inject.KeyFor[*DB]()
	loggerKey := inject.KeyFor[*Logger]()

	raw, ok := c.GetAny(dbKey)
	require.True(t, ok)
	assert.Same(t, db, raw)

	gotMust := inject.MustGetAs[Report, *DB](c, dbKey)
	assert.Same(t, db, gotMust)

	gotLogger, err := inject.TryGetAs[Report, *Logger](c, loggerKey)
	require.NoError(t, err)
	assert.Same(t, logger, gotLogger)

	// TryGetAs missing
	_, err = inject.TryGetAs[Report, *DB](c, inject.Key("missing"))
	require.Error(t, err)

	// MustGetAs panics when the key holds a different type
	assert.Panics(t, func() {
		_ = inject.MustGetAs[Report, *DB](c, loggerKey)
	})
}

// TestAccessors_Guards covers the nil-record and missing-key branches.
func TestAccessors_Guards(t *testing.T) {
	t.Parallel()

	dbKey := inject.KeyFor[*DB]()

	cases := []struct {
		name string
		c    *inject.Constructed[Report]
	}{
		{name: "nil constructed", c: nil},
		{name: "nil deps", c: &inject.Constructed[Report]{Val: &Report{}, Deps: nil}},
		{name: "missing key", c: &inject.Constructed[Report]{Val: &Report{}, Deps: map[inject.DependencyKey]any{}}},
		{name: "raw nil value", c: &inject.Constructed[Report]{Val: &Report{}, Deps: map[inject.DependencyKey]any{dbKey: nil}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := inject.GetAs[Report, *DB](tc.c, dbKey)
			assert.Nil(t, got)
			assert.False(t, ok)

			v, ok := tc.c.GetAny(dbKey)
			if tc.name == "raw nil value" {
				// The key exists even though the stored value is nil.
				assert.True(t, tc.c.Has(dbKey))
				assert.True(t, ok)
			} else {
				assert.False(t, tc.c.Has(dbKey))
				assert.False(t, ok)
			}
			assert.Nil(t, v)

			_, err := inject.TryGetAs[Report, *DB](tc.c, dbKey)
			require.Error(t, err)

			var missing inject.MissingDependencyError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, dbKey, missing.Key)
		})
	}
}

// TestTryGetAs_WrongType verifies the typed error carries the stored type's
// name.
func TestTryGetAs_WrongType(t *testing.T) {
	t.Parallel()

	loggerKey := inject.KeyFor[*Logger]()
	c := &inject.Constructed[Report]{
		Val: &Report{},
		Deps: map[inject.DependencyKey]any{
			loggerKey: &Logger{Level: "info"},
		},
	}

	_, err := inject.TryGetAs[Report, *DB](c, loggerKey)
	require.Error(t, err)

	var wrong inject.WrongTypeDependencyError
	require.True(t, errors.As(err, &wrong))
	assert.Equal(t, loggerKey, wrong.Key)
	assert.Equal(t, "*inject_test.Logger", wrong.GotType)
}

//
// -----------------------------------------------------------------------------
// Clone — branches and copy behavior
// -----------------------------------------------------------------------------
//

// TestClone_BranchesAndCopyBehavior mirrors the record-copy semantics: the
// value pointer is shared, the bag is independent.
func TestClone_BranchesAndCopyBehavior(t *testing.T) {
	t.Parallel()

	// covers: if c == nil { return nil }
	var nilC *inject.Constructed[Report]
	assert.Nil(t, nilC.Clone())

	// covers: empty-bag branch
	empty := &inject.Constructed[Report]{Val: &Report{}, Deps: map[inject.DependencyKey]any{}}
	cpEmpty := empty.Clone()
	require.NotNil(t, cpEmpty)
	require.NotNil(t, cpEmpty.Deps)
	assert.Empty(t, cpEmpty.Deps)
	cpEmpty.Deps[inject.Key("x")] = "y"
	_, ok := empty.Deps[inject.Key("x")]
	assert.False(t, ok)

	// covers: bag copied, Val shared
	db := &DB{DSN: "clone"}
	lookup := inject.NewMapLookup().Provide(db, &Logger{Level: "info"})
	in := inject.New(lookup)

	c, err := inject.Build[Report](in, reportType)
	require.NoError(t, err)

	cp := c.Clone()
	require.NotNil(t, cp)
	assert.Same(t, c.Val, cp.Val)
	cp.Deps[inject.Key("extra")] = "x"
	_, ok = c.Deps[inject.Key("extra")]
	assert.False(t, ok)
}

// TestKeyHelpers pins the key derivations.
func TestKeyHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, inject.DependencyKey("db"), inject.Key("db"))
	assert.Equal(t, inject.Key("*inject_test.DB"), inject.KeyFor[*DB]())
	assert.Equal(t, inject.Key("string"), inject.KeyFor[string]())
}
