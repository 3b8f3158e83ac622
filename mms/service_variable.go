package mms

import "github.com/slonegd/mmsdump/ber"

// decodeGetNameListRequest decodes the objectClass selector plus
// either the required empty domain spec (objectClass = domain) or an
// objectScope and optional continueAfter (any other class).
func decodeGetNameListRequest(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}

	start := c.Pos()
	if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
		return newErr(KindFlag, start)
	}
	_, clen, lerr := c.ExpectLength()
	if lerr != nil || clen != 1 {
		return newErr(KindLength, start)
	}
	classByte, berr := c.ReadByte()
	if berr != nil {
		return newErr(KindLength, start)
	}
	req := NameReqPayload{Class: NameReqListClass(classByte)}

	if req.Class == ListClassDomain {
		if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
			return newErr(KindDomain, c.Pos())
		}
		end, length, lerr := c.ExpectLength()
		if lerr != nil || length != 2 {
			return newErr(KindDomain, c.Pos())
		}
		if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
			return newErr(KindDomain, c.Pos())
		}
		_, zlen, zerr := c.ExpectLength()
		if zerr != nil || zlen != 0 {
			return newErr(KindDomain, c.Pos())
		}
		if !c.AtEnd(end) {
			return newErr(KindDomain, c.Pos())
		}
		req.Domain = NewCompactString("vmdSpecific")
	} else {
		if err := c.Expect(byte(ber.ContextSpecific1Primitive)); err != nil {
			return newErr(KindFlag, c.Pos())
		}
		_, slen, serr := c.ExpectLength()
		if serr != nil {
			return newErr(KindLength, c.Pos())
		}
		scope, rerr := c.ReadN(slen)
		if rerr != nil {
			return newErr(KindLength, c.Pos())
		}
		req.Domain = NewCompactString(string(scope))

		if peek, perr := c.PeekByte(); perr == nil && ber.Tag(peek) == ber.ContextSpecific2Primitive {
			c.ReadByte()
			_, calen, caerr := c.ExpectLength()
			if caerr != nil {
				return newErr(KindLength, c.Pos())
			}
			cont, crerr := c.ReadN(calen)
			if crerr != nil {
				return newErr(KindLength, c.Pos())
			}
			req.ContinueAfter = NewCompactString(string(cont))
			req.HasContinue = true
		}
	}

	svc.Nodes = append(svc.Nodes, Node{Kind: NodeNameReq, NameReq: req})
	return nil
}

// decodeGetNameListResponse decodes a list of identifiers followed by
// an optional moreFollows flag.
func decodeGetNameListResponse(c *ber.Cursor, svc *Service) *Error {
	end, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}

	for c.Pos() < end {
		if peek, perr := c.PeekByte(); perr == nil && ber.Tag(peek) == ber.ContextSpecific1Primitive {
			break
		}
		id, ierr := decodeIdentifier(c, ber.VisibleString)
		if ierr != nil {
			return ierr
		}
		svc.Nodes = append(svc.Nodes, Node{Kind: NodeIdStr, IdStr: id})
	}

	if c.Pos() < end {
		if err := c.Expect(byte(ber.ContextSpecific1Primitive)); err != nil {
			return newErr(KindFlag, c.Pos())
		}
		_, mlen, merr := c.ExpectLength()
		if merr != nil || mlen != 1 {
			return newErr(KindLength, c.Pos())
		}
		mb, rerr := c.ReadByte()
		if rerr != nil {
			return newErr(KindLength, c.Pos())
		}
		svc.HasMoreFollows = true
		svc.MoreFollows = mb != 0
	}

	if !c.AtEnd(end) {
		return newErr(KindLength, c.Pos())
	}
	return nil
}

// decodeReadRequest decodes the 0xa1 -> 0xa0 -> sequence-of-VarSpec
// read request body.
func decodeReadRequest(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	wrapTagPos := c.Pos()
	if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
		return newErr(KindFlag, wrapTagPos)
	}
	wrapEnd, _, werr := c.ExpectLength()
	if werr != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	listEnd, _, lerr := c.ExpectLength()
	if lerr != nil {
		return newErr(KindLength, c.Pos())
	}
	for c.Pos() < listEnd {
		vs, verr := decodeVarSpec(c)
		if verr != nil {
			return verr
		}
		svc.Nodes = append(svc.Nodes, Node{Kind: NodeVarSpec, VarSpec: vs})
	}
	if !c.AtEnd(listEnd) || !c.AtEnd(wrapEnd) {
		return newErr(KindLength, c.Pos())
	}
	return nil
}

// decodeReadResponse decodes the 0xa1-wrapped sequence of
// AccessResults.
func decodeReadResponse(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific1Constructed)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	listEnd, _, lerr := c.ExpectLength()
	if lerr != nil {
		return newErr(KindLength, c.Pos())
	}
	for c.Pos() < listEnd {
		v, verr := DecodeAccessResult(c)
		if verr != nil {
			return verr
		}
		svc.Nodes = append(svc.Nodes, Node{Kind: NodeUData, UData: v})
	}
	if !c.AtEnd(listEnd) {
		return newErr(KindLength, c.Pos())
	}
	return nil
}

// decodeWriteRequest decodes two sibling sequences - VarSpecs then
// Data values - and zips them positionally. A length mismatch between
// the two sequences does not discard the request: whatever zipped
// further, the service's error is still set to KindLength per the
// write-request zip policy.
func decodeWriteRequest(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	specEnd, _, serr := c.ExpectLength()
	if serr != nil {
		return newErr(KindLength, c.Pos())
	}
	var specs []VarSpecPayload
	for c.Pos() < specEnd {
		vs, verr := decodeVarSpec(c)
		if verr != nil {
			return verr
		}
		specs = append(specs, vs)
	}
	if !c.AtEnd(specEnd) {
		return newErr(KindLength, c.Pos())
	}

	if err := c.Expect(byte(ber.ContextSpecific0Constructed)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	valEnd, _, verr := c.ExpectLength()
	if verr != nil {
		return newErr(KindLength, c.Pos())
	}
	var values []Value
	for c.Pos() < valEnd {
		v, derr := DecodeValue(c, MaxValueDepth)
		if derr != nil {
			return derr
		}
		values = append(values, v)
	}
	if !c.AtEnd(valEnd) {
		return newErr(KindLength, c.Pos())
	}

	n := len(specs)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		svc.Nodes = append(svc.Nodes, Node{Kind: NodeWriteReq, WriteReq: WriteReqPayload{VarSpec: specs[i], Value: values[i]}})
	}
	if len(specs) != len(values) {
		return newErr(KindLength, c.Pos())
	}
	return nil
}

// decodeWriteResponse decodes a sequence of per-item write results.
func decodeWriteResponse(c *ber.Cursor, svc *Service) *Error {
	end, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	for c.Pos() < end {
		tagByte, perr := c.PeekByte()
		if perr != nil {
			return newErr(KindLength, c.Pos())
		}
		switch ber.Tag(tagByte) {
		case ber.ContextSpecific1Primitive:
			c.ReadByte()
			_, ln, lerr := c.ExpectLength()
			if lerr != nil || ln != 0 {
				return newErr(KindLength, c.Pos())
			}
			svc.Nodes = append(svc.Nodes, Node{Kind: NodeWriteResp, WriteResp: WriteRespPayload{Ok: true}})
		case ber.ContextSpecific0Primitive:
			c.ReadByte()
			_, ln, lerr := c.ExpectLength()
			if lerr != nil || ln != 1 {
				return newErr(KindLength, c.Pos())
			}
			code, rerr := c.ReadByte()
			if rerr != nil {
				return newErr(KindLength, c.Pos())
			}
			svc.Nodes = append(svc.Nodes, Node{Kind: NodeWriteResp, WriteResp: WriteRespPayload{Ok: false, ErrorCode: DataAccessError(code)}})
		default:
			return newErr(KindDataType, c.Pos())
		}
	}
	if !c.AtEnd(end) {
		return newErr(KindLength, c.Pos())
	}
	return nil
}

// decodeGetVariableAccessAttributesRequest decodes the 0xa0-wrapped
// domain reference request.
func decodeGetVariableAccessAttributesRequest(c *ber.Cursor, svc *Service) *Error {
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
	vs, verr := decodeDomainReference(c)
	if verr != nil {
		return verr
	}
	if !c.AtEnd(wrapEnd) {
		return newErr(KindLength, c.Pos())
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeVarSpec, VarSpec: vs})
	return nil
}

// decodeGetVariableAccessAttributesResponse decodes the deletable
// flag plus the doubly-wrapped sequence of TypeDesc components.
func decodeGetVariableAccessAttributesResponse(c *ber.Cursor, svc *Service) *Error {
	_, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.ContextSpecific0Primitive)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	_, dlen, derr := c.ExpectLength()
	if derr != nil || dlen != 1 {
		return newErr(KindLength, c.Pos())
	}
	db, berr := c.ReadByte()
	if berr != nil {
		return newErr(KindLength, c.Pos())
	}
	svc.HasDeletable = true
	svc.Deletable = db != 0

	if err := c.Expect(byte(ber.DataStructure)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	outerEnd, _, oerr := c.ExpectLength()
	if oerr != nil {
		return newErr(KindLength, c.Pos())
	}
	if err := c.Expect(byte(ber.DataStructure)); err != nil {
		return newErr(KindFlag, c.Pos())
	}
	listEnd, _, lerr := c.ExpectLength()
	if lerr != nil {
		return newErr(KindLength, c.Pos())
	}

	root := TypeDescPayload{IsComplex: true}
	for c.Pos() < listEnd {
		td, terr := decodeTypeDesc(c, MaxTypeDescDepth)
		if terr != nil {
			return terr
		}
		root.Children = append(root.Children, td)
	}
	if !c.AtEnd(listEnd) || !c.AtEnd(outerEnd) {
		return newErr(KindLength, c.Pos())
	}
	svc.Nodes = append(svc.Nodes, Node{Kind: NodeTypeDesc, TypeDesc: root})
	return nil
}

// decodeGetNamedVariableListAttributesRequest and ...Response decode
// getNamedVariableListAttributes generically as a flat list of Data
// values: the service's confirmed-request/response grammar is not
// otherwise pinned down, so this records whatever values are present
// rather than guessing at a named-list-specific shape.
func decodeGetNamedVariableListAttributesRequest(c *ber.Cursor, svc *Service) *Error {
	return decodeGenericValueList(c, svc)
}

func decodeGetNamedVariableListAttributesResponse(c *ber.Cursor, svc *Service) *Error {
	return decodeGenericValueList(c, svc)
}

func decodeGenericValueList(c *ber.Cursor, svc *Service) *Error {
	end, _, err := c.ExpectLengthAfterTag()
	if err != nil {
		return newErr(KindLength, c.Pos())
	}
	for c.Pos() < end {
		v, verr := DecodeValue(c, MaxValueDepth)
		if verr != nil {
			return verr
		}
		svc.Nodes = append(svc.Nodes, Node{Kind: NodeUData, UData: v})
	}
	if !c.AtEnd(end) {
		return newErr(KindLength, c.Pos())
	}
	return nil
}
