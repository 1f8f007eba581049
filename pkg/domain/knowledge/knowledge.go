package knowledge

// Base is an ordered, immutable collection of English-usage rules used as
// retrieval candidates. The position of a rule inside the base is significant:
// similarity searches return positions, which are mapped back to rules here.
type Base struct {
	rules []string
}

// NewBase copies the given rules into an immutable Base. The order of the
// input slice is preserved.
func NewBase(rules []string) Base {
	cp := make([]string, len(rules))
	copy(cp, rules)
	return Base{rules: cp}
}

// Rules returns a copy of the rule set in declaration order.
func (b Base) Rules() []string {
	cp := make([]string, len(b.rules))
	copy(cp, b.rules)
	return cp
}

// Rule returns the rule at the given position.
func (b Base) Rule(position int) string {
	return b.rules[position]
}

// Len returns the number of rules in the base.
func (b Base) Len() int {
	return len(b.rules)
}

// DefaultBase returns the built-in English-usage rule set.
func DefaultBase() Base {
	return NewBase(defaultRules)
}

var defaultRules = []string{
	"Use 'a' before consonant sounds and 'an' before vowel sounds.",
	"Always capitalize the first letter of a sentence and proper nouns.",
	"Use past tense for completed actions and present tense for current or habitual actions.",
	"Adjectives usually come before the noun they describe.",
	"The order of a basic positive sentence is Subject-Verb-Object. (Negative and question " +
		"sentences may have a different order.)",
	"Every sentence must have a subject and a verb. An object is optional. Note that an " +
		"imperative sentence may have a verb only, but the subject is understood.",
	"The subject and verb must agree in number, that is a singular subject needs a singular " +
		"verb and a plural subject needs a plural verb.",
	"When two singular subjects are connected by or, use a singular verb. The same is true " +
		"for either/or and neither/nor.",
	"When using two or more adjectives together, the usual order is opinion-adjective + " +
		"fact-adjective + noun. (There are some additional rules for the order of fact adjectives.)",
	"Treat collective nouns (e.g. committee, company, board of directors) as singular OR plural. " +
		"In BrE a collective noun is usually treated as plural, needing a plural verb and pronoun. " +
		"In AmE a collective noun is often treated as singular, needing a singular verb and pronoun.",
	"Use a comma before a coordinating conjunction, unless the conjunction is the first word in the sentence.",
	"The words its and it's are two different words with different meanings.",
	"The words your and you're are two different words with different meanings.",
	"The words there, their and they're are three different words with different meanings.",
	"The words we, our and we're are three different words with different meanings.",
	"The contraction he's can mean he is OR he has. Similarly, she's can mean she is OR she has, " +
		"and it's can mean it is OR it has, and John's can mean John is OR John has.",
	"The contraction he'd can mean he had OR he would. Similarly, they'd can mean they had OR they would.",
	"Use the indefinite article a/an for countable nouns in general. Use the definite article the for " +
		"specific countable nouns and all uncountable nouns.",
	"Use the indefinite article a with words beginning with a consonant sound. Use the indefinite article " +
		"an with words beginning with a vowel sound. see When to Say a or an",
	"Use many or few with countable nouns. Use much/a lot or little for uncountable nouns.",
	"To show possession (who is the owner of something) use an apostrophe + s for singular owners, and " +
		"s + apostrophe for plural owners.",
	"In general, use the active voice (Cats eat fish) in preference to the passive voice (Fish are eaten by cats).",
}
