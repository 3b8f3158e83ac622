package mms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPrimitiveValues(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"boolean true", Value{Kind: Boolean, Bool: true}, "boolean:{true}"},
		{"integer", Value{Kind: Integer, Int: -5}, "integer:{-5}"},
		{"unsigned", Value{Kind: Unsigned, Uint: 42}, "unsigned integer:{42}"},
		{"error value", Value{Kind: ErrorValue, ErrCode: ObjectUndefined}, "writeResult:{object-undefined}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, renderValue(tc.v, IdentityTranslator))
		})
	}
}

func TestRenderVisibleString(t *testing.T) {
	v := Value{Kind: VisibleString, Text: NewCompactString("hello")}
	assert.Equal(t, "string:{length:5, data:hello}", renderValue(v, IdentityTranslator))
}

func TestRenderOctetStringAsLowercaseHex(t *testing.T) {
	v := Value{Kind: OctetString, Octets: NewCompactString("\xAB\xCD\xEF")}
	assert.Equal(t, "octet-string:{length:3, data:abcdef}", renderValue(v, IdentityTranslator))
}

func TestRenderStructureNested(t *testing.T) {
	v := Value{Kind: Structure, Children: []Value{
		{Kind: Boolean, Bool: true},
		{Kind: Integer, Int: 7},
	}}
	assert.Equal(t, "structure:{ boolean:{true} integer:{7} }", renderValue(v, IdentityTranslator))
}

func TestRenderUsesTranslatorHook(t *testing.T) {
	tr := func(msgid string) string {
		if msgid == "boolean" {
			return "логический"
		}
		return msgid
	}
	v := Value{Kind: Boolean, Bool: false}
	assert.Equal(t, "логический:{false}", renderValue(v, tr))
}

func TestRenderIntoTruncatesSafely(t *testing.T) {
	svc := &Service{Err: newErr(KindFlag, 3)}
	full := Render(svc, IdentityTranslator)
	dst := make([]byte, 5)
	n := RenderInto(svc, IdentityTranslator, dst)
	assert.Equal(t, 5, n)
	assert.Equal(t, full[:5], string(dst))
}

func TestRenderErrorService(t *testing.T) {
	svc := &Service{Err: newErr(KindFlag, 12), Offset: 12}
	out := Render(svc, IdentityTranslator)
	assert.Equal(t, "message parsing error:{error:MMS_ERR_FLAG, position:12}", out)
}
