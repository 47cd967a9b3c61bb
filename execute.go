package main

import (
	"fmt"
)

//
// Execute one statement.  The leading keyword picks the handler; the
// handler gets the tokens after the keyword.  Control flow statements
// report where RUN should continue via the returned flow, everything
// else returns noJump.  An empty sequence is a legal no-op, which is
// what empty program lines look like to RUN
//

func (ip *interp) execStatement(toks tokenList) (flow, error) {

	key, ok := toks[0].(keyToken)
	if !ok || key == keyThen {
		if isMark(toks[0]) {
			return noJump, nil
		}

		return noJump, malformed(EBADSTATEMENT, "%s", toks[0])
	}

	args := toks[1:]

	switch key {
	case keyPrint:
		return noJump, ip.execPrint(args)

	case keyIf:
		return ip.execIf(args)

	case keyGoto:
		return ip.execGoto(args)

	case keyInput:
		return noJump, ip.execInput(args)

	case keyLet:
		return noJump, ip.execLet(args)

	case keyClear:
		return noJump, ip.execClear(args)

	case keyList:
		return noJump, ip.execList(args)

	case keyRun:
		return noJump, ip.execRun(args)

	case keyEnd:
		return noJump, ip.execEnd(args)
	}

	fatalError(fmt.Sprintf("Unexpected keyword %d", key))
	return noJump, nil // not reached
}

//
// Statements that take no arguments all complain the same way
//

func checkNoArgs(args tokenList) error {

	if !isMark(args[0]) {
		return newErrorf(ETRAILINGGARBAGE, "%s", args[0])
	}

	return nil
}

func (ip *interp) execPrint(args tokenList) error {

	switch t := args[0].(type) {
	case markToken:
		return malformed(ENOTHINGTOPRINT, "")

	case strToken:
		if err := checkNoArgs(args[1:]); err != nil {
			return err
		}

		ip.con.printText(string(t))
		ip.con.printNewline()

		return nil
	}

	res, _, err := ip.eval(args, false)
	if err != nil {
		return err
	}

	ip.con.printInt(res)
	ip.con.printNewline()

	return nil
}

func isRelOp(t token) (opToken, bool) {

	op, ok := t.(opToken)
	if !ok {
		return 0, false
	}

	switch op {
	case opGeq, opLeq, opGt, opLt, opEq, opNeq:
		return op, true
	}

	return 0, false
}

func applyRelOp(arg1, arg2 int32, op opToken) bool {

	switch op {
	case opGeq:
		return arg1 >= arg2

	case opLeq:
		return arg1 <= arg2

	case opGt:
		return arg1 > arg2

	case opLt:
		return arg1 < arg2

	case opEq:
		return arg1 == arg2

	case opNeq:
		return arg1 != arg2
	}

	fatalError(fmt.Sprintf("Not a relational operator: %s", op))
	return false // not reached
}

//
// IF <expr> <relop> <expr> THEN <statement>.  The embedded statement
// runs through execStatement, so a GOTO inside it still redirects RUN,
// and any error it raises comes back to our caller
//

func (ip *interp) execIf(args tokenList) (flow, error) {

	arg1, rest, err := ip.eval(args, true)
	if err != nil {
		return noJump, err
	}

	op, ok := isRelOp(rest[0])
	if !ok {
		return noJump, newErrorf(EBADRELOP, "%s", rest[0])
	}

	arg2, rest, err := ip.eval(rest[1:], true)
	if err != nil {
		return noJump, err
	}

	if key, ok := rest[0].(keyToken); !ok || key != keyThen {
		return noJump, newErrorf(EMISSINGTHEN, "found %s", rest[0])
	}

	if !applyRelOp(arg1, arg2, op) {
		return noJump, nil
	}

	return ip.execStatement(rest[1:])
}

func (ip *interp) execGoto(args tokenList) (flow, error) {

	target, _, err := ip.eval(args, false)
	if err != nil {
		return noJump, err
	}

	if target < 0 || target >= maxLines {
		return noJump, newErrorf(EGOTORANGE, "%d", target)
	}

	return flow(target), nil
}

//
// Fetch the variable operand of INPUT or LET
//

func getVarOperand(args tokenList, stmt keyToken) (varToken, error) {

	name, ok := args[0].(varToken)
	if !ok {
		return 0, malformed(ENOVARIABLE, "%s", stmt)
	}

	return name, nil
}

func (ip *interp) assign(name varToken, value int32) {

	ip.symtab.define(name, value)

	if ip.settings.trace.vars {
		ip.con.printText(fmt.Sprintf("%s = %d", name, value))
		ip.con.printNewline()
	}
}

func (ip *interp) execInput(args tokenList) error {

	name, err := getVarOperand(args, keyInput)
	if err != nil {
		return err
	}

	if err := checkNoArgs(args[1:]); err != nil {
		return err
	}

	value, err := ip.con.readInt()
	if err != nil {
		return err
	}

	ip.assign(name, value)

	return nil
}

func (ip *interp) execLet(args tokenList) error {

	name, err := getVarOperand(args, keyLet)
	if err != nil {
		return err
	}

	if op, ok := args[1].(opToken); !ok || op != opAssign {
		return malformed(ENOASSIGNMENT, "")
	}

	value, _, err := ip.eval(args[2:], false)
	if err != nil {
		return err
	}

	ip.assign(name, value)

	return nil
}

func (ip *interp) execClear(args tokenList) error {

	if err := checkNoArgs(args); err != nil {
		return err
	}

	ip.program.clearAll()

	return nil
}

func (ip *interp) execList(args tokenList) error {

	if err := checkNoArgs(args); err != nil {
		return err
	}

	ip.listProgram()

	return nil
}

func (ip *interp) execEnd(args tokenList) error {

	return checkNoArgs(args)
}

//
// RUN executes lines 0..maxLines-1 in order, following GOTO rewrites
// of the cursor.  The first failing statement aborts the whole run.
// Before each line we look for a posted interrupt (SIGINT, or the step
// limit running out)
//

func (ip *interp) execRun(args tokenList) error {

	if err := checkNoArgs(args); err != nil {
		return err
	}

	if ip.running {
		return newError(ENESTEDRUN)
	}

	ip.running = true
	ip.interrupted.Store(false)
	ip.symtab.undefineAll()
	ip.initClock()

	defer func() {
		ip.running = false
		ip.printStatistics()
	}()

	for i := 0; i < maxLines; {
		if ip.program.isEmpty(i) {
			i++
			continue
		}

		if err := ip.checkInterrupts(i); err != nil {
			return err
		}

		ip.stats.numStatements++

		if ip.settings.trace.exec {
			ip.con.printText(fmt.Sprintf("[%d]", i))
			ip.con.printNewline()
		}

		next, err := ip.execStatement(ip.program.line(i))
		if err != nil {
			return fmt.Errorf("%w (line %d)", err, i)
		}

		if next != noJump {
			i = int(next)
		} else {
			i++
		}
	}

	return nil
}

func (ip *interp) checkInterrupts(line int) error {

	if ip.interrupted.Swap(false) {
		return newErrorf(EINTERRUPTED, "at line %d", line)
	}

	if ip.settings.maxSteps > 0 && ip.stats.numStatements >= ip.settings.maxSteps {
		return newErrorf(EINTERRUPTED, "at line %d after %d %s", line,
			ip.stats.numStatements,
			pluralize("statement", ip.stats.numStatements))
	}

	return nil
}

//
// Post an interrupt for the running program.  Safe to call from the
// signal handling goroutine
//

func (ip *interp) interrupt() {

	ip.interrupted.Store(true)
}
