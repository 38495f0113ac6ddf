// Package types holds the value types shared by the dispatch packages.
package types

// Cardinality describes the shape of values an option accepts.
type Cardinality int

const (
	Scalar     Cardinality = iota // Scalar accepts one optional value token
	Flag                          // Flag is presence-only, optionally =true or =false
	Collection                    // Collection accumulates the values of repeated occurrences in order
	Map                           // Map accepts --name.key value or --name[key] value and accumulates entries
)

// String returns the string representation of a Cardinality
func (c Cardinality) String() string {
	switch c {
	case Flag:
		return "flag"
	case Collection:
		return "collection"
	case Map:
		return "map"
	default:
		return "scalar"
	}
}

// Token is a single captured value. Key is only set for Map options.
type Token struct {
	Key   string
	Value string
}

// Values returns the values of tokens in order.
func Values(tokens []Token) []string {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}

	return values
}

// Converter converts captured tokens into the variable target points to.
// Arguments and Scalar options receive at most one token.
type Converter interface {
	Convert(tokens []Token, target any) error
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(tokens []Token, target any) error

// Convert calls f(tokens, target).
func (f ConverterFunc) Convert(tokens []Token, target any) error {
	return f(tokens, target)
}
