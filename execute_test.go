package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmediateStatements(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		lines []string
		out   string
	}{
		{"let then print", "", []string{"LET X = 10", "PRINT X"}, "10\n"},
		{"print literal", "", []string{`PRINT "HI"`}, "HI\n"},
		{"print expression", "", []string{"LET a = 7", "PRINT A - 2 + a"}, "12\n"},
		{"if true", "", []string{"IF 1 < 2 THEN PRINT 9"}, "9\n"},
		{"if false", "", []string{"IF 2 < 1 THEN PRINT 9"}, ""},
		{"if expressions", "", []string{"LET X = 3", "IF X + 1 == 5 - 1 THEN PRINT X"}, "3\n"},
		{"if nested", "", []string{"IF 1 != 2 THEN IF 3 >= 3 THEN PRINT \"OK\""}, "OK\n"},
		{"if empty body", "", []string{"IF 1 <= 1 THEN"}, ""},
		{"input", "42\n", []string{"INPUT N", "PRINT N"}, "? 42\n"},
		{"input retries", "abc\n -7 \n", []string{"INPUT N", "PRINT N"}, "? Illegal number\n? -7\n"},
		{"goto in immediate mode", "", []string{"GOTO 5"}, ""},
		{"end", "", []string{"END"}, ""},
		{"let wraps", "", []string{"LET X = 2147483647", "LET X = X + 1", "PRINT X"}, "-2147483648\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ip, out := newTestInterp(tc.input)
			runLines(t, ip, tc.lines...)
			assert.Equal(t, tc.out, out.String())
		})
	}
}

func TestStatementErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		line string
		want error
		msg  string
	}{
		{"undefined variable", "PRINT Y", errUndefinedVariable, "Undefined variable: Y"},
		{"nothing to print", "PRINT", errMalformedStatement, "Malformed statement: Nothing to print"},
		{"garbage after literal", `PRINT "A" 1`, errTrailingGarbage, "Garbage after statement: 1"},
		{"garbage after expression", "PRINT 1 2", errTrailingGarbage, "Garbage after statement: 2"},
		{"dangling operator", "PRINT 1 +", errMalformedStatement, "Malformed statement: No term after operator +"},
		{"bad operand", "PRINT 1 + \"A\"", errMalformedStatement, `Malformed statement: Expression cannot contain "A"`},
		{"keyword operand", "LET X = 1 + LET", errMalformedStatement, "Malformed statement: Expression cannot contain LET"},
		{"starts with variable", "X = 1", errMalformedStatement, "Malformed statement: Statement cannot begin with X"},
		{"starts with then", "THEN PRINT 1", errMalformedStatement, "Malformed statement: Statement cannot begin with THEN"},
		{"bad relop", "IF 1 + 2 THEN PRINT 1", errBadRelationalOperator, "Invalid relational operator: THEN"},
		{"assign is not relop", "IF 1 = 2 THEN PRINT 1", errBadRelationalOperator, "Invalid relational operator: ="},
		{"missing relop", "IF 1", errBadRelationalOperator, "Invalid relational operator: end of line"},
		{"missing then", "IF 1 < 2 PRINT 1", errMissingThen, "No THEN after IF: found PRINT"},
		{"error in then body", "IF 1 < 2 THEN PRINT Z", errUndefinedVariable, "Undefined variable: Z"},
		{"goto too far", "GOTO 100", errGotoOutOfRange, "GOTO out of range: 100"},
		{"goto negative", "GOTO 0 - 1", errGotoOutOfRange, "GOTO out of range: -1"},
		{"input without variable", "INPUT 3", errMalformedStatement, "Malformed statement: No variable after INPUT"},
		{"input garbage", "INPUT A B", errTrailingGarbage, "Garbage after statement: B"},
		{"let without variable", "LET = 3", errMalformedStatement, "Malformed statement: No variable after LET"},
		{"let without assign", "LET X 3", errMalformedStatement, "Malformed statement: No assignment operator after LET"},
		{"let with equality", "LET X == 3", errMalformedStatement, "Malformed statement: No assignment operator after LET"},
		{"clear garbage", "CLEAR 1", errTrailingGarbage, "Garbage after statement: 1"},
		{"list garbage", "LIST X", errTrailingGarbage, "Garbage after statement: X"},
		{"run garbage", "RUN RUN", errTrailingGarbage, "Garbage after statement: RUN"},
		{"end garbage", "END END", errTrailingGarbage, "Garbage after statement: END"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ip, out := newTestInterp("")
			err := ip.executeLine(tc.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.msg, err.Error())
			assert.Empty(t, out.String())
		})
	}
}

func TestInputEndOfFile(t *testing.T) {
	ip, out := newTestInterp("")
	err := ip.executeLine("INPUT A")
	assert.ErrorIs(t, err, errEndOfFile)
	assert.Equal(t, "? ", out.String())
}

func TestRunProgram(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip,
		"0 LET I = 0",
		"1 LET I = I + 1",
		"2 IF I < 5 THEN GOTO 1",
		"3 PRINT I",
		"4 GOTO 9",
		"5 PRINT \"SKIPPED\"",
		"9 END",
		"RUN",
	)
	assert.Equal(t, "5\n", out.String())
	assert.False(t, ip.running)
}

func TestRunAbortsOnError(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip,
		"0 PRINT 1",
		"1 PRINT Q",
		"2 PRINT 2",
	)

	err := ip.executeLine("RUN")
	assert.ErrorIs(t, err, errUndefinedVariable)
	assert.Equal(t, "Undefined variable: Q (line 1)", err.Error())
	assert.Equal(t, "1\n", out.String())
	assert.False(t, ip.running)
}

func TestRunClearsDefinedFlags(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip, "LET X = 4", "0 PRINT X")

	err := ip.executeLine("RUN")
	assert.ErrorIs(t, err, errUndefinedVariable)
	assert.Empty(t, out.String())

	// the value survives, only the flag went away
	assert.Equal(t, int32(4), ip.symtab.syms[symIndex('X')].value)
	assert.False(t, ip.symtab.syms[symIndex('X')].defined)
}

func TestRunWithInput(t *testing.T) {
	ip, out := newTestInterp("3\n4\n")
	runLines(t, ip,
		"0 INPUT A",
		"1 INPUT B",
		"2 PRINT A + B",
		"RUN",
	)
	assert.Equal(t, "? ? 7\n", out.String())
}

func TestRunGotoLoopIsBounded(t *testing.T) {
	ip, _ := newTestInterp("")
	ip.settings.maxSteps = 1000
	runLines(t, ip, "10 GOTO 10")

	before := ip.program

	for pass := 0; pass < 3; pass++ {
		err := ip.executeLine("RUN")
		require.ErrorIs(t, err, errInterrupted)
		assert.Equal(t, int64(1000), ip.stats.numStatements)
		assert.Equal(t, before, ip.program)
		assert.False(t, ip.running)
	}
}

func TestRunInterrupt(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip, "0 PRINT 1", "1 PRINT 2")

	// a stale interrupt posted before RUN is discarded
	ip.interrupt()
	runLines(t, ip, "RUN")
	assert.Equal(t, "1\n2\n", out.String())

	// the step limit stops a program that never ends
	out.Reset()
	runLines(t, ip, "CLEAR", "0 PRINT 1", "1 GOTO 0")
	ip.settings.maxSteps = 10
	err := ip.executeLine("RUN")
	assert.ErrorIs(t, err, errInterrupted)
	assert.Equal(t, "Interrupted: at line 0 after 10 statements", err.Error())
}

func TestNestedRun(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip, "0 PRINT 1", "1 RUN")

	err := ip.executeLine("RUN")
	assert.ErrorIs(t, err, errNestedRun)
	assert.Equal(t, "1\n", out.String())

	// the failed RUN left us able to run again
	out.Reset()
	runLines(t, ip, "1 END", "RUN")
	assert.Equal(t, "1\n", out.String())
}

func TestGotoInsideIfRedirectsRun(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip,
		"0 LET N = 3",
		"1 PRINT N",
		"2 LET N = N - 1",
		"3 IF N > 0 THEN GOTO 1",
		"4 PRINT \"DONE\"",
		"RUN",
	)
	assert.Equal(t, "3\n2\n1\nDONE\n", out.String())
}

func TestGotoTargetIsExpression(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip,
		"0 LET T = 40",
		"1 GOTO T + 2",
		"2 PRINT 2",
		"42 PRINT 42",
		"RUN",
	)
	assert.Equal(t, "42\n", out.String())
}

func TestClearInsideProgram(t *testing.T) {
	ip, out := newTestInterp("")
	runLines(t, ip,
		"0 PRINT 0",
		"1 CLEAR",
		"2 PRINT 2",
		"RUN",
		"LIST",
	)
	assert.Equal(t, "0\n", out.String())
}

func TestTraceOutput(t *testing.T) {
	ip, out := newTestInterp("")
	ip.settings.trace = traceFlags{exec: true, vars: true}
	runLines(t, ip,
		"0 LET X = 1",
		"2 PRINT X",
		"RUN",
	)
	assert.Equal(t, "[0]\nX = 1\n[2]\n1\n", out.String())
}

func TestInputLineTooLongReprompts(t *testing.T) {
	ip, out := newTestInterp(strings.Repeat("4", maxLineLen+1) + "\n42\n")
	runLines(t, ip, "INPUT A", "PRINT A")
	assert.Equal(t, "? Line too long: at most 80 characters\n? 42\n", out.String())
}

func TestDumpTrace(t *testing.T) {
	ip, out := newTestInterp("")
	ip.settings.trace.dump = true

	// the dump goes to standard output, the program output is unchanged
	runLines(t, ip, "LET X = 2", "0 PRINT X", "RUN")
	assert.Equal(t, "2\n", out.String())
	assert.Equal(t, tokenList{keyPrint, varToken('X'), markToken{}}, ip.program.line(0))

	err := ip.executeLine("PRINT Y")
	assert.ErrorIs(t, err, errUndefinedVariable)
}

func TestStatisticsOutput(t *testing.T) {
	ip, out := newTestInterp("")
	ip.settings.trace.stats = true
	runLines(t, ip, "0 END", "1 END", "RUN")
	assert.Contains(t, out.String(), "CPU Usage: elapsed = ")
	assert.Contains(t, out.String(), fmt.Sprintf("%d statements executed", 2))
}
