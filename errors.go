package main

import (
	"fmt"
)

//
// Manifest constants for the interpreter's error messages.  Each one
// doubles as the identity of an error kind: two basicErrors are the
// same kind when their messages match, whatever the detail says
//

const (
	EUNKNOWNTOKEN     = "Unknown token"
	ETOOMANYTOKENS    = "Too many tokens"
	EUNDEFINEDVAR     = "Undefined variable"
	ETRAILINGGARBAGE  = "Garbage after statement"
	EMALFORMED        = "Malformed statement"
	EBADRELOP         = "Invalid relational operator"
	EMISSINGTHEN      = "No THEN after IF"
	EGOTORANGE        = "GOTO out of range"
	ELINERANGE        = "Line number out of range"
	EINTERRUPTED      = "Interrupted"
	ENESTEDRUN        = "RUN inside a running program"
	EENDOFFILE        = "End of file on device"
	EILLEGALNUMBER    = "Illegal number"
	ELINETOOLONG      = "Line too long"
	ENOTHINGTOPRINT   = "Nothing to print"
	ENOTERM           = "No term after operator"
	EBADOPERAND       = "Expression cannot contain"
	EBADSTATEMENT     = "Statement cannot begin with"
	ENOVARIABLE       = "No variable after"
	ENOASSIGNMENT     = "No assignment operator after LET"
	EINVALIDVARIABLE  = "Invalid variable name"
	EINTERNALSTOREBAD = "Program line is not mark terminated"
)

type basicError struct {
	msg    string
	detail string
}

func (e *basicError) Error() string {

	if e.detail == "" {
		return e.msg
	}

	return e.msg + ": " + e.detail
}

//
// Is lets errors.Is match a detailed error against the bare sentinel
// of its kind
//

func (e *basicError) Is(target error) bool {

	t, ok := target.(*basicError)

	return ok && t.msg == e.msg
}

func newError(msg string) error {

	return &basicError{msg: msg}
}

func newErrorf(msg string, f string, args ...any) error {

	return &basicError{msg: msg, detail: fmt.Sprintf(f, args...)}
}

//
// One sentinel per error kind.  Everything the tokenizer, evaluator
// and executor can fail with matches exactly one of these
//

var errUnknownToken = newError(EUNKNOWNTOKEN)
var errTooManyTokens = newError(ETOOMANYTOKENS)
var errUndefinedVariable = newError(EUNDEFINEDVAR)
var errTrailingGarbage = newError(ETRAILINGGARBAGE)
var errMalformedStatement = newError(EMALFORMED)
var errBadRelationalOperator = newError(EBADRELOP)
var errMissingThen = newError(EMISSINGTHEN)
var errGotoOutOfRange = newError(EGOTORANGE)
var errLineIndexOutOfRange = newError(ELINERANGE)
var errInterrupted = newError(EINTERRUPTED)
var errNestedRun = newError(ENESTEDRUN)
var errEndOfFile = newError(EENDOFFILE)
var errLineTooLong = newError(ELINETOOLONG)

func lineTooLong() error {

	return newErrorf(ELINETOOLONG, "at most %d characters", maxLineLen)
}

//
// Several distinct diagnostics are all malformed statements as far as
// callers are concerned.  Keep the specific wording for the user, but
// classify them under errMalformedStatement
//

func malformed(msg string, f string, args ...any) error {

	m := msg
	if f != "" {
		m += " " + fmt.Sprintf(f, args...)
	}

	return &basicError{msg: EMALFORMED, detail: m}
}
