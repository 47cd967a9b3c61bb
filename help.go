package main

var helpText = []struct {
	key  keyToken
	text string
}{
	{keyPrint, "\"text\" | expr"},
	{keyIf, "expr relop expr THEN statement"},
	{keyGoto, "expr"},
	{keyInput, "var"},
	{keyLet, "var = expr"},
	{keyClear, "- erase the program"},
	{keyList, "- show the program"},
	{keyRun, "- run the program from line 0"},
	{keyEnd, "- does nothing"},
}

//
// Printed once, under the banner.  Lines starting with a number
// 0..99 are stored, everything else runs at once
//

func printHelp(con console) {

	for _, h := range helpText {
		con.printText("  " + h.key.String() + " " + h.text)
		con.printNewline()
	}

	con.printText("  <n> statement - store statement as line n (0..99)")
	con.printNewline()
}
