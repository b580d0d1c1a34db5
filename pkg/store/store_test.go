package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func TestStore_GetSetDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	// missing key
	_, ok, err := s.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	// set and read back
	require.NoError(t, s.Set(ctx, "k1", "v1"))
	val, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", val)

	// overwrite
	require.NoError(t, s.Set(ctx, "k1", "v2"))
	val, ok, err = s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", val)

	// delete
	require.NoError(t, s.Delete(ctx, "k1"))
	_, ok, err = s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting a missing key is fine
	require.NoError(t, s.Delete(ctx, "k1"))
}

func TestStore_JSONRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	type payload struct {
		Name  string   `json:"name"`
		Items []string `json:"items"`
	}

	in := payload{Name: "test", Items: []string{"a", "b"}}
	require.NoError(t, s.SetJSON(ctx, "json-key", in))

	var out payload
	ok, err := s.GetJSON(ctx, "json-key", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)

	// envelope is present in the raw value
	raw, ok, err := s.Get(ctx, "json-key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, raw, `"v":1`)
}

func TestStore_GetJSONMissing(t *testing.T) {
	s := testStore(t)

	var out []string
	ok, err := s.GetJSON(context.Background(), "absent", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestStore_LegacyPayloadMigration(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// bare value written before versioned envelopes
	require.NoError(t, s.Set(ctx, "legacy", `["https://example.com/a"]`))

	var urls []string
	ok, err := s.GetJSON(ctx, "legacy", &urls)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"https://example.com/a"}, urls)

	// legacy object payload without an envelope
	require.NoError(t, s.Set(ctx, "legacy-obj", `{"name":"Demo"}`))
	var obj struct {
		Name string `json:"name"`
	}
	ok, err = s.GetJSON(ctx, "legacy-obj", &obj)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Demo", obj.Name)
}

func TestStore_UnsupportedVersion(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "future", `{"v":99,"data":{}}`))

	var out map[string]any
	_, err := s.GetJSON(ctx, "future", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported record version")
}

func TestMigratePayload(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{"current version", `{"v":1,"data":[1,2]}`, `[1,2]`, false},
		{"bare array", `[1,2]`, `[1,2]`, false},
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"bare string", `"hello"`, `"hello"`, false},
		{"future version", `{"v":2,"data":{}}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := migratePayload([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestStore_BadDSN(t *testing.T) {
	_, err := New(context.Background(), Config{DSN: "file:/nonexistent-dir/sub/db.sqlite?mode=ro"})
	require.Error(t, err)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(errors.New("some other error")))
	assert.True(t, isLockError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, isLockError(errors.New("database table is locked")))
}
