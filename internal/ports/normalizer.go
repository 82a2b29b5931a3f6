package ports

// Normalizer defines the interface for text normalization.
type Normalizer interface {
	Normalize(text string) string
}

// Tokenizer defines the interface for splitting text into comparable word
// tokens. Implementations normalize before splitting.
type Tokenizer interface {
	Tokenize(text string) []string
}
