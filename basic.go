package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/danswartzendruber/liner"
	"github.com/goforj/godump"
)

//
// Tricky: init is called under the hood by the GO runtime when
// we fire up, so there are no visible calls to it!
//

func init() {

	initMaps()
}

func main() {

	//
	// We need to close the Liner instances in reverse order, to make
	// sure we end up back in normal (cooked) terminal mode
	//

	defer func() {
		cleanupLiners()
	}()

	set, warnings := loadSettings(os.Getenv)

	ip := newInterp(setupConsole(), set)

	printVersionInfo(ip.con)

	for _, w := range warnings {
		ip.con.printText(w)
		ip.con.printNewline()
	}

	ip.printSettings()

	printHelp(ip.con)

	//
	// Run the signal handling code in a goroutine
	//

	go sigHdlr(ip)

	ip.repl()
}

func newInterp(con console, set settings) *interp {

	ip := &interp{con: con, settings: set}

	ip.program.clearAll()

	return ip
}

func sigHdlr(ip *interp) {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGQUIT)
	signal.Notify(ch, syscall.SIGINT)

	for {
		sig := <-ch

		switch sig {

		default:
			crash(fmt.Sprintf("Unexpected signal %d", sig))

		case syscall.SIGQUIT:
			writeGoroutineStacks() // does not return

		case syscall.SIGINT:
			ip.interrupt()
		}
	}
}

//
// The REPL.  Loop until the input runs dry; every failure is reported
// and we go back to the prompt
//

func (ip *interp) repl() {

	for {
		line, err := ip.con.readLine(myPrompt)
		if err == io.EOF {
			ip.con.printNewline()
			return
		} else if errors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if errors.Is(err, errLineTooLong) {
			ip.report(err)
			continue
		} else if err != nil {
			crash(fmt.Sprintf("readLine error: %q", err))
		}

		call(func() {
			if err := ip.executeLine(line); err != nil {
				ip.report(err)
			}
		})
	}
}

//
// Handle one line of input.  A leading number makes it a program line,
// stored at that index; anything else runs right away
//

func (ip *interp) executeLine(line string) error {

	toks, err := tokenizeLine(line)
	if err != nil {
		return err
	}

	if ip.settings.trace.dump {
		godump.Dump(toks)
	}

	if isMark(toks[0]) {
		return nil
	}

	if n, ok := toks[0].(numToken); ok {
		return ip.program.storeLine(int32(n), toks[1:])
	}

	_, err = ip.execStatement(toks)

	return err
}

func (ip *interp) report(err error) {

	ip.con.printText(err.Error())
	ip.con.printNewline()
}

func (ip *interp) printSettings() {

	t := ip.settings.trace
	if !t.exec && !t.vars && !t.dump && !t.stats && ip.settings.maxSteps == 0 {
		return
	}

	ip.con.printText(fmt.Sprintf("traceExec %s, traceVars %s, traceDump %s, stats %s",
		switchSetting(t.exec), switchSetting(t.vars), switchSetting(t.dump),
		switchSetting(t.stats)))
	ip.con.printNewline()

	if ip.settings.maxSteps > 0 {
		ip.con.printText(fmt.Sprintf("RUN limited to %d %s", ip.settings.maxSteps,
			pluralize("statement", ip.settings.maxSteps)))
		ip.con.printNewline()
	}
}

func printVersionInfo(con console) {

	s := "micro BASIC version " + VERSION
	if buildTimestampStr != "" {
		s += " - built " + buildTimestampStr
	}

	con.printText(s)
	con.printNewline()
}

//
// Errors raised by the interpreter itself, never by a user program.
// Finding one means an invariant broke.  We find the filename and line
// number of our caller and panic with them; call() will catch it
//

type basicErrorInfo struct {
	msg  string
	file string
	line int
}

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalError(msg)
	}
}

func fatalError(msg string) {

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		crash("Unable to find caller frame!")
	}

	panic(&basicErrorInfo{strings.TrimRight(msg, "\n"), file, line})
}

//
// Wrapper routine for one REPL step.  An internal failure must not
// take the whole interpreter down, so recover, say what happened and
// go back to the prompt.  The running flag is cleared by execRun's own
// deferred cleanup as the panic unwinds
//

func call(f func()) {

	defer func() {
		if e := recover(); e != nil {
			decodePanic(e)
		}
	}()

	f()
}

func decodePanic(e any) {

	switch e := e.(type) {
	case *basicErrorInfo:
		fmt.Fprintf(os.Stderr, "%q at %s line %d\n", e.msg,
			filepath.Base(e.file), e.line)

	default:
		fmt.Fprintf(os.Stderr, "%v\n", e)
		debug.PrintStack()
	}
}
