package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionMap(t *testing.T) {
	var m OptionMap
	assert.Equal(t, 0, m.Len())

	m.Set("dbName", "pgup")
	m.Set("Schema", "public")
	m.Set("DBNAME", "other")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"dbName", "Schema"}, m.Keys())

	v, ok := m.Get("dbname")
	assert.True(t, ok)
	assert.Equal(t, "other", v)

	m.Delete("SCHEMA")
	_, ok = m.Get("schema")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"dbName": "other"}, m.ToMap())
}

func TestOptionMapNil(t *testing.T) {
	var m *OptionMap
	_, ok := m.Get("x")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
	m.Delete("x")
}

func TestOptionMapRangeStops(t *testing.T) {
	m := NewOptionMap()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("c", "3")

	var seen []string
	m.Range(func(k, _ string) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestCardinalityString(t *testing.T) {
	assert.Equal(t, "flag", Flag.String())
	assert.Equal(t, "scalar", Scalar.String())
	assert.Equal(t, "collection", Collection.String())
	assert.Equal(t, "map", Map.String())
}
