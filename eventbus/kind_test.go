package eventbus

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewKind_Lineage(t *testing.T) {
	assert.Equal(t, []*Kind{testChildKind, testParentKind, Root}, testChildKind.Lineage())
	assert.Equal(t, []*Kind{Root}, Root.Lineage())
	assert.Equal(t, "event.parent.child", testChildKind.String())
	assert.Equal(t, "event", Root.String())
	assert.Equal(t, testParentKind, testChildKind.Parent())
	assert.Nil(t, Root.Parent())
	assert.Equal(t, "child", testChildKind.Name())
}

func TestKind_Is(t *testing.T) {
	assert.True(t, testChildKind.Is(testChildKind))
	assert.True(t, testChildKind.Is(testParentKind))
	assert.True(t, testChildKind.Is(Root))
	assert.False(t, testParentKind.Is(testChildKind), "Ancestors are not descendants")
	assert.False(t, testOtherKind.Is(testParentKind), "Siblings are unrelated")
	assert.False(t, testChildKind.Is(nil))
	var nilKind *Kind
	assert.False(t, nilKind.Is(Root))
}

func TestKind_Cancellable_NotInherited(t *testing.T) {
	kind := NewKind("uncancellable", testParentKind)
	assert.True(t, testParentKind.Cancellable())
	assert.False(t, kind.Cancellable(), "Each kind declares its own cancellability")
	assert.False(t, Root.Cancellable())
}

func TestNewKind_EmptyName(t *testing.T) {
	assert.Panics(t, func() {
		NewKind("", nil)
	})
	assert.Panics(t, func() {
		NewKind("  ", testParentKind)
	})
}
