package mms

import "github.com/slonegd/mmsdump/ber"

func decodeFilePath(c *ber.Cursor) (CompactString, *Error) {
	start := c.Pos()
	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		return CompactString{}, newErr(KindFlag, start)
	}
	wrapEnd, _, werr := c.ExpectLength()
	if werr != nil {
		return CompactString{}, newErr(KindLength, c.Pos())
	}
	path, perr := decodeIdentifier(c, ber.GraphicString)
	if perr != nil {
		return CompactString{}, perr
	}
	if !c.AtEnd(wrapEnd) {
		return CompactString{}, newErr(KindLength, start)
	}
	return path, nil
}

// decodeFileOpenRequest decodes a path wrapper followed by a start
// position.
func decodeFileOpenRequest(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	path, perr := decodeFilePath(c)
	if perr != nil {
		return perr
	}
	if err := c.Expect(byte(ber.ContextSpecific1Primitive)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	_, plen, lerr := c.ExpectLength()
	if lerr != nil || plen > 4 {
		return newErr(KindLength, c.Pos())
	}
	pos, rerr := c.ReadUint32(plen)
	if rerr != nil {
		return newErr(KindLength, c.Pos())
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeFopenReq, FopenReq: FopenReqPayload{Path: path, Position: pos}})
	return nil
}

// decodeFileOpenResponse decodes an FRSM handle and attribute pair.
func decodeFileOpenResponse(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	_, flen, ferr := c.ExpectLength()
	if ferr != nil || flen > 4 {
		return newErr(KindLength, c.Pos())
	}
	frsm, rerr := c.ReadUint32(flen)
	if rerr != nil {
		return newErr(KindLength, c.Pos())
	}

	if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	attrEnd, _, aerr := c.ExpectLength()
	if aerr != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	_, slen, serr := c.ExpectLength()
	if serr != nil || slen > 4 {
		return newErr(KindLength, c.Pos())
	}
	size, szerr := c.ReadUint32(slen)
	if szerr != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific1Primitive)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	_, tlen, terr := c.ExpectLength()
	if terr != nil || tlen != 15 {
		return newErr(KindLength, c.Pos())
	}
	raw, rerr2 := c.ReadN(tlen)
	if rerr2 != nil {
		return newErr(KindLength, c.Pos())
	}
	ts, ok := decodeTimestamp(raw)
	if !ok {
		return newErr(KindDataType, c.Pos())
	}
	if !c.AtEnd(attrEnd) {
		return newErr(KindLength, c.Pos())
	}

	svc.Nodes = append(svc.Nodes, Node{Kind: NodeFopenResp, FopenResp: FopenRespPayload{
		FRSM: frsm,
		Attr: FileAttr{Size: size, Timestamp: ts},
	}})
	return nil
}

// decodeFileReadRequest decodes a bare big-endian FRSM id carried
// directly as the service's content (no inner tag).
func decodeFileReadRequest(c *ber.Cursor, svc *Service) *Error {
	_, length, err := c.ExpectLengthAfterTag()
	if err != nil || length > 4 {
		return newErr(KindLength, c.Pos())
	}
	frsm, rerr := c.ReadUint32(length)
	if rerr != nil {
		return newErr(KindLength, c.Pos())
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeFReadReq, FReadReq: frsm})
	return nil
}

// decodeFileReadResponse decodes a payload - truncated to its first
// and last 4 bytes, per the fileRead response truncation policy - and
// an optional moreFollows flag that defaults to true when absent.
func decodeFileReadResponse(c *ber.Cursor, svc *Service) *Error {
	end, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	_, plen, perr := c.ExpectLength()
	if perr != nil {
		return newErr(KindLength, c.Pos())
	}
	payload, rerr := c.ReadN(plen)
	if rerr != nil {
		return newErr(KindLength, c.Pos())
	}

	resp := FReadRespPayload{Size: uint32(plen), MoreFollows: true}
	for i := 0; i < 4 && i < len(payload); i++ {
		resp.First4[i] = payload[i]
	}
	for i := 0; i < 4 && i < len(payload); i++ {
		resp.Last4[3-i] = payload[len(payload)-1-i]
	}

	if c.Pos() < end {
		if err := c.Expect(byte(ber.ContextSpecific1Primitive)); err != nil {
			return newErr(KindFlag, c.Pos())
		}
		_, mlen, merr := c.ExpectLength()
		if merr != nil || mlen != 1 {
			return newErr(KindLength, c.Pos())
		}
		mb, mrerr := c.ReadByte()
		if mrerr != nil {
			return newErr(KindLength, c.Pos())
		}
		resp.MoreFollows = mb != 0
	}

	if !c.AtEnd(end) {
		return newErr(KindLength, c.Pos())
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeFReadResp, FReadResp: resp})
	return nil
}

// decodeFileCloseRequest decodes a bare FRSM id.
func decodeFileCloseRequest(c *ber.Cursor, svc *Service) *Error {
	_, length, err := c.ExpectLengthAfterTag()
	if err != nil || length > 4 {
		return newErr(KindLength, c.Pos())
	}
	frsm, rerr := c.ReadUint32(length)
	if rerr != nil {
		return newErr(KindLength, c.Pos())
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeFCloseReq, FCloseReq: frsm})
	return nil
}

// decodeFileCloseResponse decodes the single success marker byte.
func decodeFileCloseResponse(c *ber.Cursor, svc *Service) *Error {
	_, length, err := c.ExpectLengthAfterTag()
	if err != nil || length != 1 {
		return newErr(KindLength, c.Pos())
	}
	b, rerr := c.ReadByte()
	if rerr != nil {
		return newErr(KindLength, c.Pos())
	}
	if b != 0x00 {
		return newErr(KindFlag, c.Pos())
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeFCloseResp, FCloseResp: true})
	return nil
}

// decodeFileDirectoryRequest decodes a single path wrapper.
func decodeFileDirectoryRequest(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	path, perr := decodeFilePath(c)
	if perr != nil {
		return perr
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeFileSpec, FileSpec: path})
	return nil
}

// decodeFileDirectoryResponse decodes a declared entry count followed
// by that many directory entries. A mismatch between the declared and
// decoded counts is not an error: the list is silently discarded and
// the response renders as empty.
func decodeFileDirectoryResponse(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	wrapEnd, _, werr := c.ExpectLength()
	if werr != nil {
		return newErr(KindLength, c.Pos())
	}
	declaredCount, cerr := c.ReadByte()
	if cerr != nil {
		return newErr(KindLength, c.Pos())
	}
	entriesEnd, _, lerr := c.ExpectLength()
	if lerr != nil {
		return newErr(KindLength, c.Pos())
	}

	var entries []Node
	for c.Pos() < entriesEnd {
		entry, eerr := decodeDirEntry(c)
		if eerr != nil {
			return eerr
		}
		entries = append(entries, entry)
	}
	if !c.AtEnd(entriesEnd) || !c.AtEnd(wrapEnd) {
		return newErr(KindLength, c.Pos())
	}

	if int(declaredCount) == len(entries) {
		svc.Nodes = append(svc.Nodes, entries...)
	}
	return nil
}
