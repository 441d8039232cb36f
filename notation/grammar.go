package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// One cell of notation, whitespace already removed, e.g. (120){8}1-5[4:1]/Ch[2:1]

type cellNode struct {
	Tempo  *float64    `( "(" @Number ")" )?`
	Length *lengthNode `( "{" @@ "}" )?`
	Notes  []*noteNode `( @@ ( "/"? @@ )* )?`
}

type lengthNode struct {
	Seconds bool    `@"#"?`
	Value   float64 `@Number`
}

type noteNode struct {
	Laned *lanedNode `  @@`
	Touch *touchNode `| @@`
}

type lanedNode struct {
	Button     int        `@Digit`
	Decorators []string   `@( "b" | "x" | "$" | "@" | "?" | "!" )*`
	Hold       *holdNode  `( @@`
	Slide      *slideNode `| @@ )?`
}

type holdNode struct {
	Marker     string       `@"h"`
	Decorators []string     `@( "b" | "x" )*`
	Length     *bracketNode `( "[" @@ "]" )?`
}

type slideNode struct {
	Paths []*pathNode `@@ ( "*" @@ )*`
}

type pathNode struct {
	Segments []*segmentNode `@@+`
}

type segmentNode struct {
	Shape    string `@( "-" | "<" | ">" | "^" | "v" | "V" | "s" | "z" | "w" | "p" "p"? | "q" "q"? )`
	Vertices []int  `@Digit @Digit?`

	// the break marker may go on either side of the length
	Break      bool         `@"b"?`
	Length     *bracketNode `( "[" @@ "]" )?`
	BreakAfter bool         `@"b"?`
}

type touchNode struct {
	Region     string         `@( "A" | "B" | "C" | "D" | "E" )`
	Index      *int           `@Digit?`
	Decorators []string       `@"f"*`
	Hold       *touchHoldNode `@@?`
}

type touchHoldNode struct {
	Marker     string       `@"h"`
	Decorators []string     `@"f"*`
	Length     *bracketNode `( "[" @@ "]" )?`
}

// bracketNode keeps the raw tokens of a [...] length; their meaning depends
// on whether a hold or a slide owns it.
type bracketNode struct {
	Tokens []string `@( Number | "#" | ":" )+`
}

var cellLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Open", Pattern: `[\(\{\[]`, Action: lexer.Push("Bracket")},
		{Name: "Digit", Pattern: `[0-9]`},
		{Name: "Letter", Pattern: `[A-Za-z]`},
		{Name: "Symbol", Pattern: `[-<>^/*$@?!]`},
	},
	"Bracket": {
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?|\.[0-9]+`},
		{Name: "Mark", Pattern: `[#:]`},
		{Name: "Close", Pattern: `[\)\}\]]`, Action: lexer.Pop()},
	},
})

var cellParser = participle.MustBuild[cellNode](
	participle.Lexer(cellLexer),
	participle.UseLookahead(2),
)
