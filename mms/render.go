package mms

import (
	"fmt"
	"strings"
)

// Translator is the renderer's sole dependency on the outside world:
// given an English master literal it returns a localised string, or
// the literal unchanged if no mapping exists. It must never return an
// empty replacement for a non-empty input's absence of translation -
// the identity behaviour is "return msgid".
type Translator func(msgid string) string

// IdentityTranslator is the default Translator: every literal passes
// through unchanged, so output is plain English.
func IdentityTranslator(msgid string) string { return msgid }

// Render walks a decoded Service and produces its textual rendering.
// A Service carrying a non-nil Err short-circuits to the diagnostic
// form and never attempts a structural render.
func Render(svc *Service, t Translator) string {
	if t == nil {
		t = IdentityTranslator
	}
	if svc.Err != nil {
		return fmt.Sprintf("%s:{error:%s, position:%d}", t("message parsing error"), svc.Err.Kind, svc.Offset)
	}

	switch svc.Class {
	case ClassRequest:
		return renderRequest(svc, t)
	case ClassResponse:
		return renderResponse(svc, t)
	case ClassReport:
		return renderReport(svc, t)
	case ClassInitiateRequest, ClassInitiateResponse:
		return renderInitiate(svc, t)
	default:
		return fmt.Sprintf("%s:{error:%s, position:%d}", t("message parsing error"), KindMsgType, svc.Offset)
	}
}

// RenderInto writes Render's output into dst, truncating safely. It
// never writes past len(dst) and returns the number of bytes written,
// mirroring the bounded mms_to_string(service, buffer, size) contract.
func RenderInto(svc *Service, t Translator, dst []byte) int {
	return copy(dst, Render(svc, t))
}

func listRender(t Translator, header string, items []string) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s:{}", t(header))
	}
	return fmt.Sprintf("%s:{ %s }", t(header), strings.Join(items, " "))
}

func containerRender(t Translator, header, body string) string {
	return fmt.Sprintf("%s:{%s}", t(header), body)
}

// renderValue renders one Data CHOICE value per the fixed primitive
// master-string formats.
func renderValue(v Value, t Translator) string {
	switch v.Kind {
	case Boolean:
		return fmt.Sprintf("%s:{%t}", t("boolean"), v.Bool)
	case Integer:
		return fmt.Sprintf("%s:{%d}", t("integer"), v.Int)
	case Unsigned:
		return fmt.Sprintf("%s:{%d}", t("unsigned integer"), v.Uint)
	case Float:
		return fmt.Sprintf("%s:{%f}", t("float"), v.Flt)
	case BitString:
		return fmt.Sprintf("%s:{length:%d, data:%s}", t("bit-string"), v.Bits.Bits, renderBitString(v))
	case OctetString:
		return fmt.Sprintf("%s:{length:%d, data:%s}", t("octet-string"), v.Octets.Len(), hexLower(v.Octets.Bytes()))
	case VisibleString:
		return fmt.Sprintf("%s:{length:%d, data:%s}", t("string"), v.Text.Len(), v.Text.String())
	case BinaryTime:
		return fmt.Sprintf("%s:{UTC:%s}", t("binary-time"), renderBinaryTime(v.BinTime))
	case UtcTime:
		return fmt.Sprintf("%s:{%s}", t("UTC-time"), renderUtcTime(v.UtcTm))
	case Structure:
		children := make([]string, len(v.Children))
		for i, c := range v.Children {
			children[i] = renderValue(c, t)
		}
		return listRender(t, "structure", children)
	case ErrorValue:
		return fmt.Sprintf("%s:{%s}", t("writeResult"), v.ErrCode.String())
	default:
		return t("invalid")
	}
}

func hexLower(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, x := range b {
		out[i*2] = digits[x>>4]
		out[i*2+1] = digits[x&0x0f]
	}
	return string(out)
}

func renderBitString(bs Value) string {
	var sb strings.Builder
	for i := 0; i < bs.Bits.Bits; i++ {
		if bs.Bits.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func renderBinaryTime(bt BinaryTimeValue) string {
	y, m, d := addDays(1984, 1, 1, int(bt.DaysSince1984))
	ms := bt.MsOfDay
	h := ms / 3_600_000
	ms %= 3_600_000
	mi := ms / 60_000
	ms %= 60_000
	s := ms / 1000
	milli := ms % 1000
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d", y, m, d, h, mi, s, milli)
}

func renderUtcTime(ut UtcTimeValue) string {
	t := unixToCivil(int64(ut.Seconds))
	millis := int(ut.FractionQ16) * 1000 / 65536
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d", t.year, t.month, t.day, t.hour, t.min, t.sec, millis)
}

type civilTime struct {
	year, month, day, hour, min, sec int
}

// unixToCivil converts seconds since 1970-01-01T00:00:00Z to a
// broken-down UTC time using the civil_from_days algorithm (Howard
// Hinnant's proleptic Gregorian calendar days_from_civil/civil_from_days).
func unixToCivil(secs int64) civilTime {
	days := secs / 86400
	rem := secs % 86400
	if rem < 0 {
		rem += 86400
		days--
	}
	y, m, d := civilFromDays(days)
	return civilTime{
		year: y, month: m, day: d,
		hour: int(rem / 3600),
		min:  int(rem % 3600 / 60),
		sec:  int(rem % 60),
	}
}

func civilFromDays(z int64) (year, month, day int) {
	z += 719468
	era := z / 146097
	if z < 0 {
		era = (z - 146096) / 146097
	}
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

// addDays adds n days to a y-m-d civil date via the same algorithm,
// used for BinaryTime's days-since-1984-01-01 base.
func addDays(y, m, d, n int) (int, int, int) {
	base := daysFromCivil(y, m, d)
	return civilFromDays(base + int64(n))
}

func daysFromCivil(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}
	era := yy / 400
	if yy < 0 {
		era = (yy - 399) / 400
	}
	yoe := yy - era*400
	mp := int64(m) + 9
	if m > 2 {
		mp = int64(m) - 3
	}
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func renderVarSpec(vs VarSpecPayload, t Translator) string {
	return containerRender(t, "varSpec", vs.Domain.String()+"/"+vs.Item.String())
}

func renderRequest(svc *Service, t Translator) string {
	switch svc.ServiceID {
	case ServiceRead:
		return renderReadRequest(svc, t)
	case ServiceWrite:
		return renderWriteRequest(svc, t)
	case ServiceGetNameList:
		return renderGetNameListRequest(svc, t)
	case ServiceGetVariableAccessAttributes:
		return renderGetVarAccessAttrRequest(svc, t)
	case ServiceGetNamedVariableListAttrs:
		return renderGenericList(svc, t, "namedVariableListAttributesRequest")
	case ServiceFileOpen:
		return renderFileOpenRequest(svc, t)
	case ServiceFileRead:
		return renderFileReadRequest(svc, t)
	case ServiceFileClose:
		return renderFileCloseRequest(svc, t)
	case ServiceFileDirectory:
		return renderFileDirRequest(svc, t)
	default:
		return fmt.Sprintf("%s:{error:%s, position:%d}", t("message parsing error"), KindReqType, svc.Offset)
	}
}

func renderResponse(svc *Service, t Translator) string {
	switch svc.ServiceID {
	case ServiceRead:
		return renderReadResponse(svc, t)
	case ServiceWrite:
		return renderWriteResponse(svc, t)
	case ServiceGetNameList:
		return renderGetNameListResponse(svc, t)
	case ServiceGetVariableAccessAttributes:
		return renderGetVarAccessAttrResponse(svc, t)
	case ServiceGetNamedVariableListAttrs:
		return renderGenericList(svc, t, "namedVariableListAttributesResponse")
	case ServiceFileOpen:
		return renderFileOpenResponse(svc, t)
	case ServiceFileRead:
		return renderFileReadResponse(svc, t)
	case ServiceFileClose:
		return renderFileCloseResponse(svc, t)
	case ServiceFileDirectory:
		return renderFileDirResponse(svc, t)
	default:
		return fmt.Sprintf("%s:{error:%s, position:%d}", t("message parsing error"), KindRespType, svc.Offset)
	}
}

func renderReadRequest(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeVarSpec {
			items = append(items, renderVarSpec(n.VarSpec, t))
		}
	}
	return listRender(t, "readVarRequest", items)
}

func renderReadResponse(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeUData {
			items = append(items, renderValue(n.UData, t))
		}
	}
	return listRender(t, "readVarResponse", items)
}

func renderWriteRequest(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeWriteReq {
			items = append(items, fmt.Sprintf("%s %s", renderVarSpec(n.WriteReq.VarSpec, t), renderValue(n.WriteReq.Value, t)))
		}
	}
	return listRender(t, "writeVarRequest", items)
}

func renderWriteResponse(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind != NodeWriteResp {
			continue
		}
		if n.WriteResp.Ok {
			items = append(items, fmt.Sprintf("%s:{success}", t("writeResult")))
		} else {
			items = append(items, fmt.Sprintf("%s:{%s}", t("writeResult"), n.WriteResp.ErrorCode.String()))
		}
	}
	return listRender(t, "writeVarResponse", items)
}

func renderGetNameListRequest(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind != NodeNameReq {
			continue
		}
		items = append(items, fmt.Sprintf("domain:%s", n.NameReq.Domain.String()))
		if n.NameReq.HasContinue {
			items = append(items, fmt.Sprintf("continueAfter:%s", n.NameReq.ContinueAfter.String()))
		}
	}
	return listRender(t, "getNamesRequest", items)
}

func renderGetNameListResponse(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeIdStr {
			items = append(items, fmt.Sprintf("%s:{%s}", t("id_string"), n.IdStr.String()))
		}
	}
	if svc.HasMoreFollows {
		items = append(items, fmt.Sprintf("moreFollows:%t", svc.MoreFollows))
	}
	return listRender(t, "getNamesResponse", items)
}

func renderGetVarAccessAttrRequest(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeVarSpec {
			items = append(items, renderVarSpec(n.VarSpec, t))
		}
	}
	return listRender(t, "varAccessAttributesRequest", items)
}

func renderTypeDesc(td TypeDescPayload, t Translator) string {
	if td.IsComplex {
		children := make([]string, len(td.Children))
		for i, c := range td.Children {
			children[i] = renderTypeDesc(c, t)
		}
		return listRender(t, "structure", children)
	}
	return fmt.Sprintf("%s:{typeCode:0x%02x, constraint:%d}", td.Name.String(), td.TypeCode, td.ConstraintLength)
}

func renderGetVarAccessAttrResponse(svc *Service, t Translator) string {
	var items []string
	if svc.HasDeletable {
		items = append(items, fmt.Sprintf("deletable:%t", svc.Deletable))
	}
	for _, n := range svc.Nodes {
		if n.Kind == NodeTypeDesc {
			items = append(items, renderTypeDesc(n.TypeDesc, t))
		}
	}
	return listRender(t, "varAccessAttributes", items)
}

func renderGenericList(svc *Service, t Translator, header string) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeUData {
			items = append(items, renderValue(n.UData, t))
		}
	}
	return listRender(t, header, items)
}

func renderFileOpenRequest(svc *Service, t Translator) string {
	for _, n := range svc.Nodes {
		if n.Kind == NodeFopenReq {
			return fmt.Sprintf("%s:{path:%s, position:%d}", t("fileOpenRequest"), n.FopenReq.Path.String(), n.FopenReq.Position)
		}
	}
	return fmt.Sprintf("%s:{}", t("fileOpenRequest"))
}

func renderFileOpenResponse(svc *Service, t Translator) string {
	for _, n := range svc.Nodes {
		if n.Kind == NodeFopenResp {
			return fmt.Sprintf("%s:{frsm:%d, size:%d, timestamp:%s}", t("fileOpenResponse"),
				n.FopenResp.FRSM, n.FopenResp.Attr.Size, renderTimestamp(n.FopenResp.Attr.Timestamp))
		}
	}
	return fmt.Sprintf("%s:{}", t("fileOpenResponse"))
}

func renderTimestamp(ts Timestamp) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second)
}

func renderFileReadRequest(svc *Service, t Translator) string {
	for _, n := range svc.Nodes {
		if n.Kind == NodeFReadReq {
			return fmt.Sprintf("%s:{frsm:%d}", t("fileReadRequest"), n.FReadReq)
		}
	}
	return fmt.Sprintf("%s:{}", t("fileReadRequest"))
}

func renderFileReadResponse(svc *Service, t Translator) string {
	for _, n := range svc.Nodes {
		if n.Kind == NodeFReadResp {
			r := n.FReadResp
			return fmt.Sprintf("%s:{size:%d, first4:%s, last4:%s, moreFollows:%t}", t("fileReadResponse"),
				r.Size, hexLower(r.First4[:]), hexLower(r.Last4[:]), r.MoreFollows)
		}
	}
	return fmt.Sprintf("%s:{}", t("fileReadResponse"))
}

func renderFileCloseRequest(svc *Service, t Translator) string {
	for _, n := range svc.Nodes {
		if n.Kind == NodeFCloseReq {
			return fmt.Sprintf("%s:{frsm:%d}", t("fileCloseRequest"), n.FCloseReq)
		}
	}
	return fmt.Sprintf("%s:{}", t("fileCloseRequest"))
}

func renderFileCloseResponse(svc *Service, t Translator) string {
	for _, n := range svc.Nodes {
		if n.Kind == NodeFCloseResp {
			return fmt.Sprintf("%s:{ok:%t}", t("fileCloseResponse"), n.FCloseResp)
		}
	}
	return fmt.Sprintf("%s:{}", t("fileCloseResponse"))
}

func renderFileDirRequest(svc *Service, t Translator) string {
	for _, n := range svc.Nodes {
		if n.Kind == NodeFileSpec {
			return fmt.Sprintf("%s:{path:%s}", t("fileDirRequest"), n.FileSpec.String())
		}
	}
	return fmt.Sprintf("%s:{}", t("fileDirRequest"))
}

func renderFileDirResponse(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeDirEntry {
			items = append(items, fmt.Sprintf("%s:{name:%s, size:%d, timestamp:%s}", t("directory entry"),
				n.DirEntry.Name.String(), n.DirEntry.Attr.Size, renderTimestamp(n.DirEntry.Attr.Timestamp)))
		}
	}
	return listRender(t, "fileDirResponse", items)
}

func renderReport(svc *Service, t Translator) string {
	var items []string
	for _, n := range svc.Nodes {
		if n.Kind == NodeUData {
			items = append(items, renderValue(n.UData, t))
		}
	}
	return listRender(t, "informationReport", items)
}

// renderInitiate produces the InitializePDU rendering described by the
// concrete end-to-end scenario: a fixed outer frame plus the nested
// InitializeDetail block listing every parameter-CBB and
// services-supported bit by name.
func renderInitiate(svc *Service, t Translator) string {
	in := svc.Init
	var cbb []string
	for i, name := range parameterCBBNames {
		cbb = append(cbb, fmt.Sprintf("%s:%t", name, in.ParameterCBB.Has(i)))
	}
	var svcs []string
	for i, name := range servicesSupportedNames {
		svcs = append(svcs, fmt.Sprintf("%s:%t", name, in.ServicesSupported.Has(i)))
	}

	detail := fmt.Sprintf("%s:{ version:%d, %s:{ %s }, %s:{ %s } }",
		t("InitializeDetail"), in.Version,
		t("paramterCBB"), strings.Join(cbb, ", "),
		t("servicesSupportedCalled"), strings.Join(svcs, ", "))

	return fmt.Sprintf("%s:{ localDetailCalling:%d, maxCalling:%d, maxCalled:%d, structNestLevel:%d, %s }",
		t("InitializePDU"), in.LocalDetailCalling, in.MaxOutstandingCalling, in.MaxOutstandingCalled, in.NestingLevel, detail)
}
