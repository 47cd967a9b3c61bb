package main

//
// The program store.  A fixed array of maxLines slots, indexed by line
// number.  Every slot holds a mark-terminated token sequence; a slot
// whose first token is the mark is empty.  Slots are never removed,
// only overwritten (possibly with an empty body)
//

var emptyLine = tokenList{markToken{}}

func (ps *programStore) clearAll() {

	for i := range ps.lines {
		ps.lines[i] = emptyLine
	}
}

//
// Replace slot idx with a private copy of toks, up to and including the
// mark.  Validation happens before anything is written, so a failed
// store leaves the slot exactly as it was
//

func (ps *programStore) storeLine(idx int32, toks tokenList) error {

	if idx < 0 || idx >= maxLines {
		return newErrorf(ELINERANGE, "%d", idx)
	}

	n := 0
	for n < len(toks) && !isMark(toks[n]) {
		n++
	}

	basicAssert(n < len(toks), EINTERNALSTOREBAD)

	if n+1 > maxTokens {
		return tooManyTokens()
	}

	line := make(tokenList, n+1)
	copy(line, toks[:n+1])

	ps.lines[idx] = line

	return nil
}

func (ps *programStore) line(idx int) tokenList {

	return ps.lines[idx]
}

func (ps *programStore) isEmpty(idx int) bool {

	l := ps.lines[idx]

	return len(l) == 0 || isMark(l[0])
}

//
// Rebuild approximate source text for a stored line: tokens separated
// by single spaces, strings re-quoted, the mark dropped
//

func formatLine(toks tokenList) string {

	var b []byte

	for _, t := range toks {
		if isMark(t) {
			break
		}

		if len(b) > 0 {
			b = append(b, ' ')
		}

		b = append(b, t.String()...)
	}

	return string(b)
}

func (ip *interp) listProgram() {

	for i := 0; i < maxLines; i++ {
		if ip.program.isEmpty(i) {
			continue
		}

		ip.con.printInt(int32(i))
		ip.con.printText(" ")
		ip.con.printText(formatLine(ip.program.line(i)))
		ip.con.printNewline()
	}
}
