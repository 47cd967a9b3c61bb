package main

import (
	"strconv"
	"strings"
)

//
// Build the lookup maps for keywords and operators.  Keywords are
// matched case-sensitively, so the map keys are upper case only
//

func initMaps() {

	keywordNames = map[keyToken]string{
		keyPrint: "PRINT",
		keyIf:    "IF",
		keyThen:  "THEN",
		keyGoto:  "GOTO",
		keyInput: "INPUT",
		keyLet:   "LET",
		keyClear: "CLEAR",
		keyList:  "LIST",
		keyRun:   "RUN",
		keyEnd:   "END",
	}

	keywordMap = make(map[string]keyToken)
	for k, name := range keywordNames {
		keywordMap[name] = k
	}

	opNames = map[opToken]string{
		opAdd:    "+",
		opSub:    "-",
		opGeq:    ">=",
		opLeq:    "<=",
		opGt:     ">",
		opLt:     "<",
		opEq:     "==",
		opNeq:    "!=",
		opAssign: "=",
	}

	opMap = make(map[string]opToken)
	for op, name := range opNames {
		opMap[name] = op
	}
}

func (t varToken) String() string {
	return string(rune(t))
}

func (t opToken) String() string {
	return opNames[t]
}

func (t numToken) String() string {
	return strconv.FormatInt(int64(t), 10)
}

func (t keyToken) String() string {
	return keywordNames[t]
}

func (t strToken) String() string {
	return "\"" + string(t) + "\""
}

func (markToken) String() string {
	return "end of line"
}

func isMark(t token) bool {

	_, ok := t.(markToken)

	return ok
}

//
// Split a raw input line into words.  Words are separated by spaces,
// except inside a double-quoted span.  The quote characters are word
// boundaries themselves: an opening quote starts a new word, and the
// matching closing quote ends it, quotes included.  An unterminated
// quote simply runs to the end of the line, and the recognizers will
// reject what comes out
//

func splitWords(raw string) []string {

	var words []string
	var wr strings.Builder
	var inStr bool

	flush := func() {
		if wr.Len() > 0 {
			words = append(words, wr.String())
			wr.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		ch := raw[i]

		switch {
		case ch == '"' && !inStr:
			flush()
			wr.WriteByte(ch)
			inStr = true

		case ch == '"':
			wr.WriteByte(ch)
			flush()
			inStr = false

		case ch == ' ' && !inStr:
			flush()

		default:
			wr.WriteByte(ch)
		}
	}

	flush()

	return words
}

//
// The recognizers.  Each one either claims the word, returning the
// token, or declines.  classifyWord tries them in a fixed order, and
// the first one to claim a word wins.  The order matters: a lone '-'
// is claimed by getOp before getNum ever sees it
//

func getVar(wr string) (token, bool) {

	if len(wr) != 1 || !isLetter(wr[0]) {
		return nil, false
	}

	return varToken(wr[0]), true
}

func getOp(wr string) (token, bool) {

	op, ok := opMap[wr]
	if !ok {
		return nil, false
	}

	return op, true
}

//
// An optional '-', then one or more decimal digits.  Anything that does
// not fit in 32 bits is not a number (we do not clamp)
//

func getNum(wr string) (token, bool) {

	digits := strings.TrimPrefix(wr, "-")
	if len(digits) == 0 {
		return nil, false
	}

	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, false
		}
	}

	n, err := strconv.ParseInt(wr, 10, 32)
	if err != nil {
		return nil, false
	}

	return numToken(n), true
}

func getKey(wr string) (token, bool) {

	key, ok := keywordMap[wr]
	if !ok {
		return nil, false
	}

	return key, true
}

func getStr(wr string) (token, bool) {

	if len(wr) < 2 || wr[0] != '"' || wr[len(wr)-1] != '"' {
		return nil, false
	}

	body := wr[1 : len(wr)-1]
	if len(body) > maxStrLen {
		return nil, false
	}

	return strToken(body), true
}

var recognizers = []func(string) (token, bool){
	getVar,
	getOp,
	getNum,
	getKey,
	getStr,
}

func classifyWord(wr string) (token, error) {

	for _, rec := range recognizers {
		if t, ok := rec(wr); ok {
			return t, nil
		}
	}

	return nil, newErrorf(EUNKNOWNTOKEN, "%s", wr)
}

//
// A line has maxTokens slots and the end of line mark takes one of
// them, so it holds maxTokens-1 real tokens at most
//

func tooManyTokens() error {

	return newErrorf(ETOOMANYTOKENS, "at most %d per line (%d slots including the end of line mark)",
		maxTokens-1, maxTokens)
}

//
// Turn one input line into a mark-terminated token sequence.  Any bad
// word throws away the whole line; nothing is returned on failure, so
// the caller cannot store half a line by accident
//

func tokenizeLine(raw string) (tokenList, error) {

	toks := make(tokenList, 0, maxTokens)

	for _, wr := range splitWords(raw) {
		t, err := classifyWord(wr)
		if err != nil {
			return nil, err
		}

		toks = append(toks, t)

		if len(toks) == maxTokens {
			return nil, tooManyTokens()
		}
	}

	return append(toks, markToken{}), nil
}

func isLetter(ch byte) bool {

	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}
