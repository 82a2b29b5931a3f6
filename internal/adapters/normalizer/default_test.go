package normalizer

import "testing"

var normalizeCases = []struct {
	name     string
	input    string
	expected string
}{
	{
		name:     "Lowercase and punctuation split",
		input:    "Hello, World! Total: 42.",
		expected: "helloworld total 42",
	},
	{
		name:     "Joining comma with OCR spacing",
		input:    "12 , 450 units",
		expected: "12450 units",
	},
	{
		name:     "Joining comma without spacing",
		input:    "12,450 units",
		expected: "12450 units",
	},
	{
		name:     "Joining slash in dates",
		input:    "due 15/09/2024 or 15 / 09 / 2024",
		expected: "due 15092024 or 15092024",
	},
	{
		name:     "Preserved currency and hash prefixes",
		input:    "Total: $500 for order #123 by @clerk at 25%",
		expected: "total $500 for order #123 by @clerk at 25%",
	},
	{
		name:     "Preserved unicode currency",
		input:    "₹1,200 or €45 or £30 or ¥900",
		expected: "₹1200 or €45 or £30 or ¥900",
	},
	{
		name:     "Tag spans become spaces",
		input:    "<b>Invoice</b>#123",
		expected: "invoice #123",
	},
	{
		name:     "Entity spans become spaces",
		input:    "fish&nbsp;chips &#169; shop",
		expected: "fish chips shop",
	},
	{
		name:     "Ampersand alone splits",
		input:    "fish & chips",
		expected: "fish chips",
	},
	{
		name:     "Hyphen splits compound identifiers",
		input:    "INV-10234",
		expected: "inv 10234",
	},
	{
		name:     "Period splits decimals",
		input:    "3.14",
		expected: "3 14",
	},
	{
		name:     "Split punctuation between joined values",
		input:    "a. , b",
		expected: "a b",
	},
	{
		name:     "Whitespace collapse and trim",
		input:    "  several\t\twords \n here  ",
		expected: "several words here",
	},
	{
		name:     "Joining punctuation fuses spaced neighbors",
		input:    ", start / mid ,",
		expected: "startmid",
	},
	{
		name:     "Vertical tab around joining comma",
		input:    "12\v, 450",
		expected: "12450",
	},
	{
		name:     "Next-line control around joining comma",
		input:    "12,450",
		expected: "12450",
	},
	{
		name:     "Line and paragraph separators around joining slash",
		input:    "15 / 09 /2024",
		expected: "15092024",
	},
	{
		name:     "No-break space around joining comma",
		input:    "1 , 250",
		expected: "1250",
	},
	{
		name:     "Empty input",
		input:    "",
		expected: "",
	},
	{
		name:     "Punctuation-only input",
		input:    "?!.,/:;",
		expected: "",
	},
}

func TestDefaultNormalize(t *testing.T) {
	n := NewDefaultNormalizer()
	for _, tc := range normalizeCases {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestOptimizedMatchesDefault(t *testing.T) {
	def := NewDefaultNormalizer()
	opt := NewOptimizedNormalizer()
	for _, tc := range normalizeCases {
		t.Run(tc.name, func(t *testing.T) {
			want := def.Normalize(tc.input)
			got := opt.Normalize(tc.input)
			if got != want {
				t.Errorf("optimized Normalize(%q) = %q, default gives %q", tc.input, got, want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewDefaultNormalizer()
	for _, tc := range normalizeCases {
		once := n.Normalize(tc.input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", tc.input, once, twice)
		}
	}
}

func TestFactory(t *testing.T) {
	f := NewNormalizerFactory()
	if _, ok := f.CreateNormalizer(DefaultNormalizerType).(*DefaultNormalizer); !ok {
		t.Error("expected DefaultNormalizer")
	}
	if _, ok := f.CreateNormalizer(OptimizedNormalizerType).(*OptimizedNormalizer); !ok {
		t.Error("expected OptimizedNormalizer")
	}
}

func BenchmarkDefaultNormalize(b *testing.B) {
	n := NewDefaultNormalizer()
	input := "Invoice #10234 Total: $1,250 due 15/09/2024 <b>PAID</b> fish &amp; chips"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.Normalize(input)
	}
}

func BenchmarkOptimizedNormalize(b *testing.B) {
	n := NewOptimizedNormalizer()
	input := "Invoice #10234 Total: $1,250 due 15/09/2024 <b>PAID</b> fish &amp; chips"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.Normalize(input)
	}
}
