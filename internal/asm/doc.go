/*
Package asm implements a two-pass assembler for QASM, a small assembly
language targeting a hypothetical 10-bit word machine with a base-4 object
code encoding.

	MAIN:   mov   #5, r1
	LEN:    .data 7, -1
	        jmp   MAIN
	        stop

	        .entry MAIN
	        .extern PRINTLN

See |Grammar| for a description of source syntax. Assembling proceeds in
three stages, each implemented in its own file:

  - macro.go expands "mcro NAME ... mcroend" blocks into a flat, in-memory
    source listing (Preprocess).
  - firstpass.go walks the expanded source once to build a symbol table and
    the final instruction/data counters (FirstPass).
  - secondpass.go walks the expanded source a second time, now that symbol
    addresses are known, to encode instructions and data and produce the
    object, entries and externals file bodies (SecondPass).

Assemble ties the three stages together for a single translation unit. There
is no support for linking several translation units together, nor for
executing the code it produces; see the package's Non-goals in the project
specification.

# Bugs

The grammar's matrix-index operand form, LABEL[rX][rY], reads awkwardly next
to the register and immediate forms; a dedicated token type would clean up
classifyOperand, but the one-pass-over-the-string approach mirrors how the
reference assembler this package is modeled on does it.
*/
package asm

// Grammar declares the syntax of QASM in EBNF (with some liberties).
const Grammar = `
program      = { line } ;
line         = ';' comment
             | label ':' instruction
             | instruction ;                (* no trailing comment *)
comment      = { char } ;
instruction  = directive | opcode [ operands ] ;
directive    = ".data" intlist
             | ".string" string
             | ".mat" dims [ intlist ]
             | ".extern" labellist
             | ".entry" labellist ;
dims         = '[' integer ']' '[' integer ']' ;
opcode       = "mov" | "cmp" | "add" | "sub" | "lea"
             | "clr" | "not" | "inc" | "dec"
             | "jmp" | "bne" | "jsr" | "red" | "prn"
             | "rts" | "stop" ;
operands     = operand { ',' operand } ;
operand      = immediate | register | matrix | direct ;
immediate    = '#' integer ;
register     = 'r' digit ;                 (* digit in 0..7 *)
matrix       = label '[' register ']' '[' register ']' ;
direct       = label ;
label        = letter { letter | digit } ;
integer      = [ '-' | '+' ] digit { digit } ;
string       = '"' { char } '"' ;
`
