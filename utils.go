package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Are we connected to a tty?  If both standard input and standard
// output are terminals we drive them with liner, otherwise we fall
// back to plain streams (a program piped in, say)
//

func checkTerminal() bool {

	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func setupConsole() console {

	if checkTerminal() {
		return newLineConsole(os.Stdout)
	}

	return newStreamConsole(os.Stdin, os.Stdout)
}

//
// We create two Liner instances, and need to create and destroy them
// in LIFO order, as Close restores the terminal to the state it had
// when the instance was created: normal => raw => raw on the way in,
// raw => raw => normal on the way out
//

func setupLiners() {
	g.parserLiner = setupLiner(false)
	g.inputLiner = setupLiner(true)
}

func setupLiner(allowCtrlC bool) *liner.State {

	l := liner.NewLiner()

	l.SetMultiLineMode(allowCtrlC)

	//
	// Without this liner swallows ^C, and Prompt never returns
	// ErrPromptAborted
	//

	l.SetCtrlCAborts(allowCtrlC)

	return l
}

//
// Restore terminal state.  NB: must not call crash(), since crash()
// calls us
//

func cleanupLiners() {
	cleanupLiner(&g.inputLiner)
	cleanupLiner(&g.parserLiner)
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

//
// Read a line from the terminal, with editing and (optionally) history.
// Lines longer than maxLineLen are refused, the same bound the stream
// console applies
//

func readLine(l *liner.State, prompt string, history bool) (string, error) {

	s, err := l.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if len(s) > maxLineLen {
		return "", lineTooLong()
	}

	if history && strings.TrimSpace(s) != "" {
		l.AppendHistory(s)
	}

	return s, nil
}

//
// Settings come from the environment, read once at start up.
// BASIC_TRACE is a comma separated list of trace names, BASIC_MAXSTEPS
// caps the number of statements one RUN may execute
//

func loadSettings(getenv func(string) string) (settings, []string) {

	var set settings
	var warnings []string

	for _, name := range strings.Split(getenv(traceEnvVar), ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
			// NOP

		case "exec":
			set.trace.exec = true

		case "vars":
			set.trace.vars = true

		case "dump":
			set.trace.dump = true

		case "stats":
			set.trace.stats = true

		default:
			warnings = append(warnings,
				fmt.Sprintf("Unknown %s setting %q ignored", traceEnvVar, name))
		}
	}

	if v := getenv(maxStepsEnvVar); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			warnings = append(warnings,
				fmt.Sprintf("Invalid %s value %q ignored", maxStepsEnvVar, v))
		} else {
			set.maxSteps = n
		}
	}

	return set, warnings
}

func switchSetting(b bool) string {

	if b {
		return "on"
	}

	return "off"
}

func pluralize(str string, n int64) string {

	if n == 1 {
		return str
	}

	return str + "s"
}

func convertToMB(num uint64) uint64 {

	return num / (1024 * 1024)
}

//
// CPU accounting for the stats trace.  utime and stime come from
// /proc/self/stat in clock ticks; sysconf tells us how many ticks make
// a second.  Where /proc is not available we report zero rather than
// fail the RUN that asked
//

func (ip *interp) initClock() {

	ip.stats.elapsed = time.Now()
	ip.stats.numStatements = 0
	ip.stats.utime, ip.stats.stime = getCPUInfo(1)
}

func getCPUInfo(divisor int64) (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck <= 0 {
		return 0, 0
	}

	clktck /= divisor
	if clktck == 0 {
		clktck = 1
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	//
	// The command name (field 2) is parenthesized and may contain
	// blanks, so count fields from the closing paren
	//

	s := string(contents)
	if i := strings.LastIndexByte(s, ')'); i >= 0 {
		s = s[i+1:]
	}

	fields := strings.Fields(s)
	if len(fields) < 13 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

func (ip *interp) printStatistics() {

	var mem runtime.MemStats

	if !ip.settings.trace.stats {
		return
	}

	elapsed := time.Since(ip.stats.elapsed)
	utime, stime := getCPUInfo(1)

	ip.con.printText(fmt.Sprintf("CPU Usage: elapsed = %s / user = %s / system = %s",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-ip.stats.utime), formatCPUTime(stime-ip.stats.stime)))
	ip.con.printNewline()

	runtime.ReadMemStats(&mem)
	ip.con.printText(fmt.Sprintf("%dMB memory used", convertToMB(mem.HeapAlloc)))
	ip.con.printNewline()

	ip.con.printText(fmt.Sprintf("%d %s executed", ip.stats.numStatements,
		pluralize("statement", ip.stats.numStatements)))
	ip.con.printNewline()
}

func writeGoroutineStacks() {

	name := "goroutines-stacks"
	mode := (os.O_CREATE | os.O_WRONLY | os.O_TRUNC)

	dumpFile, err := os.OpenFile(name, mode, 0644)
	if err != nil {
		crash(fmt.Sprintf("Unable to open %s (%s)", name, err))
	}

	_ = pprof.Lookup("goroutine").WriteTo(dumpFile, 2)
	_ = dumpFile.Close()

	crash(fmt.Sprintf("Dumping goroutine stacks to %v and exiting", name))
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output.  Also
// dup stderr and close the originals, in case another goroutine is
// writing to the terminal.  Make sure to call cleanupLiners first, so
// the terminal state is sane
//

func crash(msg string) {

	var w *os.File

	cleanupLiners()

	if msg != "" {
		fd, err := syscall.Dup(int(os.Stderr.Fd()))
		if err == nil {
			os.Stdout.Close()
			os.Stderr.Close()
			w = os.NewFile(uintptr(fd), "stderr on new fd")
		} else {
			w = os.Stderr
		}

		fmt.Fprintln(w, msg)
	}

	os.Exit(1)
}
