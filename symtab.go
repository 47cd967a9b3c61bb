package main

//
// The symbol table has one slot per letter.  Upper and lower case
// name the same slot.  A slot must be defined (by LET or INPUT) before
// it can be read; an undefined read is an error, never a silent zero
//

func symIndex(name varToken) int {

	ch := byte(name)

	switch {
	case ch >= 'A' && ch <= 'Z':
		return int(ch - 'A')

	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a')
	}

	fatalError(EINVALIDVARIABLE + " " + string(rune(ch)))
	return -1 // not reached
}

func (st *symbolTable) lookup(name varToken) (int32, error) {

	sym := &st.syms[symIndex(name)]
	if !sym.defined {
		return 0, newErrorf(EUNDEFINEDVAR, "%s", name)
	}

	return sym.value, nil
}

func (st *symbolTable) define(name varToken, value int32) {

	sym := &st.syms[symIndex(name)]

	sym.value = value
	sym.defined = true
}

//
// RUN starts a fresh scope by dropping every defined flag.  The values
// themselves are left alone; nothing can read them until they are
// assigned again
//

func (st *symbolTable) undefineAll() {

	for i := range st.syms {
		st.syms[i].defined = false
	}
}
