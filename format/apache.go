package format

// ApacheFields holds the byte-range (or parsed-scalar) locations of every
// field the Apache/Nginx combined format exposes. Nginx's default
// combined format is byte-identical for these fields, so one scanner
// serves both.
type ApacheFields struct {
	IP        Range
	Timestamp Range
	Method    Range
	Path      Range
	Referer   Range
	UserAgent Range

	Status      int
	StatusValid bool

	Size      uint64
	SizeValid bool // false for both "field missing" and the "-" (unknown) sentinel
}

// FindApacheFields locates every field of a single Apache/Nginx combined
// log line. It returns ok=false if any required field (IP, timestamp,
// request, status) cannot be located; referer and user-agent are
// optional and left as None on failure without failing the whole line.
func FindApacheFields(line []byte) (ApacheFields, bool) {
	var f ApacheFields
	n := len(line)

	// 1. IP ends at first space.
	ipEnd := indexByteFrom(line, ' ', 0)
	if ipEnd < 0 {
		return f, false
	}
	f.IP = Range{0, ipEnd}

	// 2. Timestamp begins at first '[' after IP, ends at next ']'.
	tsStart := indexByteFrom(line, '[', ipEnd)
	if tsStart < 0 {
		return f, false
	}
	tsStart++
	tsEnd := indexByteFrom(line, ']', tsStart)
	if tsEnd < 0 {
		return f, false
	}
	f.Timestamp = Range{tsStart, tsEnd}

	// 3. Request: between first '"' after ']' and the next '"' followed
	// by a space (or end of line).
	reqStart := indexByteFrom(line, '"', tsEnd)
	if reqStart < 0 {
		return f, false
	}
	reqStart++
	reqEnd := -1
	for p := reqStart; p < n; {
		q := indexByteFrom(line, '"', p)
		if q < 0 {
			break
		}
		if q+1 >= n || line[q+1] == ' ' {
			reqEnd = q
			break
		}
		p = q + 1
	}
	if reqEnd < 0 || reqEnd < reqStart {
		return f, false
	}
	request := line[reqStart:reqEnd]
	methodEnd := indexByteFrom(request, ' ', 0)
	if methodEnd < 0 {
		return f, false
	}
	f.Method = Range{reqStart, reqStart + methodEnd}
	pathStart := reqStart + methodEnd + 1
	pathEnd := indexByteFrom(line, ' ', pathStart)
	if pathEnd < 0 || pathEnd > reqEnd {
		pathEnd = reqEnd
	}
	f.Path = Range{pathStart, pathEnd}

	// 4. Status: the three digit bytes at the first non-space position
	// after the closing '"' of the request.
	p := reqEnd + 1
	for p < n && line[p] == ' ' {
		p++
	}
	status, ok := parseUint3Digits(line, p)
	if !ok {
		return f, false
	}
	f.Status = status
	f.StatusValid = true
	p += 3

	// 5. Size: the token after status.
	for p < n && line[p] == ' ' {
		p++
	}
	sizeStart := p
	for p < n && line[p] != ' ' {
		p++
	}
	if tok := line[sizeStart:p]; len(tok) == 1 && tok[0] == '-' {
		f.SizeValid = false
	} else if v, ok := parseUintToken(tok); ok {
		f.Size = v
		f.SizeValid = true
	}

	// 6. Referer and user-agent: the next two quoted strings, in order.
	f.Referer = None
	f.UserAgent = None
	refStart := indexByteFrom(line, '"', p)
	if refStart < 0 {
		return f, true
	}
	refStart++
	refEnd := indexByteFrom(line, '"', refStart)
	if refEnd < 0 {
		return f, true
	}
	f.Referer = Range{refStart, refEnd}

	uaStart := indexByteFrom(line, '"', refEnd+1)
	if uaStart < 0 {
		return f, true
	}
	uaStart++
	uaEnd := indexByteFrom(line, '"', uaStart)
	if uaEnd < 0 {
		return f, true
	}
	f.UserAgent = Range{uaStart, uaEnd}

	return f, true
}
