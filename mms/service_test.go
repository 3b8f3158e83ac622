package mms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadRequestOneVariable mirrors the read-request-for-one-variable
// end-to-end scenario: a Confirmed-Request PDU carrying a single
// domain/item VarSpec renders with the variable's "domain/item" path
// embedded in the output.
func TestReadRequestOneVariable(t *testing.T) {
	data := parseHex(`
		A0 22
		02 01 01
		A4 1D
		A1 1B
		A0 19
		30 17
		A0 15
		A1 13
		1A 03 4C 44 30
		1A 0C 53 54 24 42 65 68 24 73 74 56 61 6C
	`)
	svc := Parse(data)
	require.Nil(t, svc.Err)
	assert.Equal(t, ClassRequest, svc.Class)
	assert.Equal(t, ServiceRead, svc.ServiceID)
	require.Len(t, svc.Nodes, 1)
	assert.Equal(t, "LD0", svc.Nodes[0].VarSpec.Domain.String())
	assert.Equal(t, "ST$Beh$stVal", svc.Nodes[0].VarSpec.Item.String())

	out := Render(svc, IdentityTranslator)
	assert.Contains(t, out, "readVarRequest:{")
	assert.Contains(t, out, "varSpec:{LD0/ST$Beh$stVal}")
}

// TestReadResponseOneBoolean mirrors the read-response-with-one-boolean
// scenario.
func TestReadResponseOneBoolean(t *testing.T) {
	data := parseHex(`
		A1 0A
		02 01 01
		A4 05
		A1 03
		83 01 01
	`)
	svc := Parse(data)
	require.Nil(t, svc.Err)
	assert.Equal(t, ClassResponse, svc.Class)
	require.Len(t, svc.Nodes, 1)
	assert.Equal(t, Boolean, svc.Nodes[0].UData.Kind)
	assert.True(t, svc.Nodes[0].UData.Bool)

	out := Render(svc, IdentityTranslator)
	assert.Contains(t, out, "readVarResponse:{")
	assert.Contains(t, out, "boolean:{true}")
}

// TestFileOpenRequest mirrors the fileOpen-request scenario.
func TestFileOpenRequest(t *testing.T) {
	data := parseHex(`
		A0 16
		02 01 01
		48 11
		A0 0C
		19 0A 2F 78 79 7A 2F 74 2E 74 78 74
		81 01 00
	`)
	svc := Parse(data)
	require.Nil(t, svc.Err)
	require.Len(t, svc.Nodes, 1)
	assert.Equal(t, "/xyz/t.txt", svc.Nodes[0].FopenReq.Path.String())
	assert.Equal(t, uint32(0), svc.Nodes[0].FopenReq.Position)

	out := Render(svc, IdentityTranslator)
	assert.Equal(t, "fileOpenRequest:{path:/xyz/t.txt, position:0}", out)
}

// TestFileDirectoryResponseCountMismatch mirrors the zero-entries,
// wrong-declared-count scenario: the mismatch is not an error, but the
// list is silently emptied.
func TestFileDirectoryResponseCountMismatch(t *testing.T) {
	data := parseHex(`
		A1 09
		02 01 01
		4D 04
		A0 02 05 00
	`)
	svc := Parse(data)
	require.Nil(t, svc.Err)
	assert.Empty(t, svc.Nodes)

	out := Render(svc, IdentityTranslator)
	assert.Equal(t, "fileDirResponse:{}", out)
}

// TestInitiateRequest mirrors the InitiatePDU scenario: every scalar
// field plus the two named-bit bitmaps decode and render correctly.
func TestInitiateRequest(t *testing.T) {
	data := parseHex(`
		A8 25
		80 02 03 E8
		81 01 05
		82 01 05
		83 01 05
		A4 16
		80 01 01
		81 03 05 80 00
		82 0C 03 08 00 00 00 00 00 00 00 00 00 00
	`)
	svc := Parse(data)
	require.Nil(t, svc.Err)
	assert.Equal(t, ClassInitiateRequest, svc.Class)
	assert.Equal(t, uint32(1000), svc.Init.LocalDetailCalling)
	assert.Equal(t, uint8(5), svc.Init.MaxOutstandingCalling)
	assert.Equal(t, uint8(5), svc.Init.MaxOutstandingCalled)
	assert.Equal(t, uint8(5), svc.Init.NestingLevel)
	assert.Equal(t, uint8(1), svc.Init.Version)
	assert.True(t, svc.Init.ParameterCBB.Has(0), "str1 bit")
	assert.False(t, svc.Init.ParameterCBB.Has(1), "str2 bit")
	assert.True(t, svc.Init.ServicesSupported.Has(4), "read bit")
	assert.False(t, svc.Init.ServicesSupported.Has(5), "write bit")

	out := Render(svc, IdentityTranslator)
	assert.Contains(t, out, "InitializePDU:{ localDetailCalling:1000, maxCalling:5, maxCalled:5, structNestLevel:5,")
	assert.Contains(t, out, "paramterCBB:{ str1:true, str2:false")
	assert.Contains(t, out, "read:true")
}

// TestMalformedReadMissingInnerWrapper mirrors the malformed-read
// scenario: a read request missing its required 0xa1 wrapper fails
// with FLAG at the offset of the bad byte, and partial structure plus
// a diagnostic render are still produced.
func TestMalformedReadMissingInnerWrapper(t *testing.T) {
	data := parseHex(`
		A0 07
		02 01 01
		A4 02
		A0 00
	`)
	svc := Parse(data)
	require.NotNil(t, svc.Err)
	assert.Equal(t, KindFlag, svc.Err.Kind)
	assert.True(t, svc.Offset >= 0 && svc.Offset <= len(data))

	out := Render(svc, IdentityTranslator)
	assert.Contains(t, out, "message parsing error:{error:MMS_ERR_FLAG, position:")
}
