package main

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/danswartzendruber/liner"
)

//
// The console is everything the interpreter knows about the outside
// world: a blocking line reader for the REPL, a blocking integer reader
// for INPUT, and character output.  There are two implementations, one
// driving a real terminal through liner, and one over plain streams for
// pipes and tests
//

type console interface {
	readLine(prompt string) (string, error)
	readInt() (int32, error)
	printText(s string)
	printInt(n int32)
	printNewline()
}

type output struct {
	w io.Writer
}

func (o output) printText(s string) {
	_, _ = io.WriteString(o.w, s)
}

func (o output) printInt(n int32) {
	_, _ = io.WriteString(o.w, strconv.FormatInt(int64(n), 10))
}

func (o output) printNewline() {
	_, _ = io.WriteString(o.w, "\n")
}

//
// Parse what the user typed at an INPUT prompt: optional sign, digits,
// surrounding blanks ignored
//

func parseInputInt(s string) (int32, bool) {

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}

	return int32(n), true
}

//
// Terminal console.  Two liner instances, as in any liner program that
// wants history for commands but not for data: the parser liner records
// history, the input liner does not
//

type lineConsole struct {
	output
	parserLiner *liner.State
	inputLiner  *liner.State
}

func newLineConsole(w io.Writer) *lineConsole {

	setupLiners()

	return &lineConsole{
		output:      output{w: w},
		parserLiner: g.parserLiner,
		inputLiner:  g.inputLiner,
	}
}

func (c *lineConsole) readLine(prompt string) (string, error) {

	return readLine(c.parserLiner, prompt, true)
}

//
// Keep asking until we get a number.  ^C at the INPUT prompt abandons
// the statement (and with it any running program)
//

func (c *lineConsole) readInt() (int32, error) {

	for {
		s, err := readLine(c.inputLiner, executePrompt, false)
		if errors.Is(err, errLineTooLong) {
			c.printText(err.Error())
			c.printNewline()
			continue
		} else if err != nil {
			return 0, inputError(err)
		}

		if n, ok := parseInputInt(s); ok {
			return n, nil
		}

		c.printText(EILLEGALNUMBER)
		c.printNewline()
	}
}

//
// What a failed INPUT read means to the program: ^C (liner aborts the
// prompt) interrupts it, end of input is end of file
//

func inputError(err error) error {

	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return newErrorf(EINTERRUPTED, "at INPUT")

	case err == io.EOF:
		return errEndOfFile
	}

	return err
}

//
// Stream console.  Lines are bounded to maxLineLen characters; a longer
// line is read to its end and thrown away whole, and the caller gets
// errLineTooLong instead.  Backspace and DEL erase the previous
// character, so input recorded from a keyboard replays the way it was
// typed
//

type streamConsole struct {
	output
	in *bufio.Reader
}

func newStreamConsole(r io.Reader, w io.Writer) *streamConsole {

	return &streamConsole{
		output: output{w: w},
		in:     bufio.NewReader(r),
	}
}

func (c *streamConsole) readRawLine() (string, error) {

	var buf []byte
	var sawAny bool
	var overflow bool

	done := func() (string, error) {
		if overflow {
			return "", lineTooLong()
		}

		return string(buf), nil
	}

	for {
		ch, err := c.in.ReadByte()
		if err == io.EOF {
			if !sawAny {
				return "", io.EOF
			}

			return done()
		} else if err != nil {
			return "", err
		}

		sawAny = true

		switch ch {
		case '\n':
			return done()

		case '\r':
			// dropped, so CRLF input works

		case '\b', 0x7f:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}

		default:
			if len(buf) < maxLineLen {
				buf = append(buf, ch)
			} else {
				overflow = true
			}
		}
	}
}

func (c *streamConsole) readLine(prompt string) (string, error) {

	c.printText(prompt)

	return c.readRawLine()
}

func (c *streamConsole) readInt() (int32, error) {

	for {
		c.printText(executePrompt)

		s, err := c.readRawLine()
		if errors.Is(err, errLineTooLong) {
			c.printText(err.Error())
			c.printNewline()
			continue
		} else if err != nil {
			return 0, inputError(err)
		}

		if n, ok := parseInputInt(s); ok {
			return n, nil
		}

		c.printText(EILLEGALNUMBER)
		c.printNewline()
	}
}
