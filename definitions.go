package main

import (
	"sync/atomic"
	"time"

	"github.com/danswartzendruber/liner"
)

//
// Constants
//

const VERSION = "0.1.0"

const maxLines = 100

//
// A token sequence holds at most maxTokens entries, and that count
// includes the terminating mark, so a line carries maxTokens-1 real
// tokens at most
//

const maxTokens = 20

const maxStrLen = 20

const maxLineLen = 80

const myPrompt = "$ "

const executePrompt = "? "

const numLetters = 26

const traceEnvVar = "BASIC_TRACE"
const maxStepsEnvVar = "BASIC_MAXSTEPS"

//
// Type definitions
//

//
// A token is one of the concrete types below.  Consumers dispatch with
// a type switch, so adding a kind means touching every such switch.
// String() renders the token the way LIST shows it
//

type token interface {
	String() string
}

type varToken byte

type opToken int8

type numToken int32

type keyToken int8

type strToken string

type markToken struct{}

type tokenList []token

const (
	opAdd opToken = iota
	opSub
	opGeq
	opLeq
	opGt
	opLt
	opEq
	opNeq
	opAssign
)

const (
	keyPrint keyToken = iota
	keyIf
	keyThen
	keyGoto
	keyInput
	keyLet
	keyClear
	keyList
	keyRun
	keyEnd
)

//
// flow is what a statement hands back to RUN: the stored line to
// continue at, or noJump to fall through to the next one
//

type flow int

const noJump flow = -1

type symbol struct {
	value   int32
	defined bool
}

type symbolTable struct {
	syms [numLetters]symbol
}

type programStore struct {
	lines [maxLines]tokenList
}

type traceFlags struct {
	exec  bool
	vars  bool
	dump  bool
	stats bool
}

type settings struct {
	trace    traceFlags
	maxSteps int64
}

//
// Runtime statistics for the executing program
//

type statistics struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}

//
// The interpreter proper.  Everything a program can observe lives here,
// so tests can run any number of isolated instances
//

type interp struct {
	con         console
	program     programStore
	symtab      symbolTable
	settings    settings
	stats       statistics
	running     bool
	interrupted atomic.Bool
}

//
// Global variables
//

var buildTimestampStr string

//
// Terminal state.  This is per process, not per interpreter: there is
// one terminal, and crash() has to be able to put it back in cooked
// mode from anywhere
//

var g struct {
	parserLiner *liner.State
	inputLiner  *liner.State
}

var keywordMap map[string]keyToken
var keywordNames map[keyToken]string

var opMap map[string]opToken
var opNames map[opToken]string
