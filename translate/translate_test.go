package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateIdentityWhenNoTableLoaded(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "boolean", r.Translate("boolean"))
}

func TestTranslateReturnsMatch(t *testing.T) {
	r := NewRegistry()
	r.Load(ZhCN, map[string]string{"boolean": "布尔"})
	r.SetLocale(ZhCN)
	assert.Equal(t, "布尔", r.Translate("boolean"))
}

// TestTranslateReturnsSourceOnNoMatch is the Open Question #2
// regression test: a miss must return the original msgid, never the
// translation of some unrelated entry in the table.
func TestTranslateReturnsSourceOnNoMatch(t *testing.T) {
	r := NewRegistry()
	r.Load(ZhCN, map[string]string{"boolean": "布尔", "integer": "整数"})
	r.SetLocale(ZhCN)
	assert.Equal(t, "unsigned integer", r.Translate("unsigned integer"))
}

func TestSetLocaleSwitchesActiveTable(t *testing.T) {
	r := NewRegistry()
	r.Load(EnUK, map[string]string{"boolean": "boolean"})
	r.Load(ZhCN, map[string]string{"boolean": "布尔"})

	r.SetLocale(ZhCN)
	assert.Equal(t, "布尔", r.Translate("boolean"))

	r.SetLocale(EnUK)
	assert.Equal(t, "boolean", r.Translate("boolean"))
}

func TestLocalesListsLoadedLanguages(t *testing.T) {
	r := NewRegistry()
	r.Load(ZhCN, map[string]string{"boolean": "布尔"})
	r.Load(EnUK, map[string]string{})
	assert.ElementsMatch(t, []Lang{ZhCN, EnUK}, r.Locales())
}
