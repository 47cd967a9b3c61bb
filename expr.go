package main

//
// Expressions are <value> (<+|-> <value>)*, evaluated strictly left to
// right.  A value is a number literal or a defined variable.  Sums wrap
// on overflow, like the 32-bit registers of the machine this dialect
// grew up on
//

func (ip *interp) getValue(t token) (int32, error) {

	switch t := t.(type) {
	case numToken:
		return int32(t), nil

	case varToken:
		return ip.symtab.lookup(t)
	}

	return 0, malformed(EBADOPERAND, "%s", t)
}

func isAddOp(t token) (opToken, bool) {

	op, ok := t.(opToken)
	if !ok || (op != opAdd && op != opSub) {
		return 0, false
	}

	return op, true
}

//
// Evaluate the expression at the head of toks.  With continues set the
// evaluator stops at the first token that is not an additive operator
// and hands the rest back, which is how IF finds its relational
// operator and THEN.  Without it, anything left over is garbage
//

func (ip *interp) eval(toks tokenList, continues bool) (int32, tokenList, error) {

	res, err := ip.getValue(toks[0])
	if err != nil {
		return 0, nil, err
	}

	toks = toks[1:]

	for !isMark(toks[0]) {
		op, ok := isAddOp(toks[0])
		if !ok {
			if continues {
				return res, toks, nil
			}

			return 0, nil, newErrorf(ETRAILINGGARBAGE, "%s", toks[0])
		}

		toks = toks[1:]

		if isMark(toks[0]) {
			return 0, nil, malformed(ENOTERM, "%s", op)
		}

		arg, err := ip.getValue(toks[0])
		if err != nil {
			return 0, nil, err
		}

		switch op {
		case opAdd:
			res += arg

		case opSub:
			res -= arg
		}

		toks = toks[1:]
	}

	return res, toks, nil
}
