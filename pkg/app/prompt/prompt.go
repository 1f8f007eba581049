// Package prompt assembles the instruction prompts sent to the generative
// model. Everything here is pure string assembly: identical inputs produce
// byte-identical outputs, there are no network calls and no retrieval.
package prompt

import (
	"fmt"
	"strings"
)

// AmbiguousMarker is the sentinel the model is instructed to emit, followed by
// an explanation, when the input is ambiguous or context-dependent. Callers
// can detect it with strings.HasPrefix on the trimmed result.
const AmbiguousMarker = "AMBIGUOUS TEXT"

// StyleImprovement builds the prompt for the combined grammar + style pass.
func StyleImprovement(text string, rules []string) string {
	return fmt.Sprintf(`Role: You are an expert in written Standard English.

Context: Your task is to improve the grammar and style of the following text, taking account of
the Relevant language rules given below:

Original: %s

Relevant language rules:
%s

Instructions:

Think step by step.

First, decide if the meaning of the text is clear. If it contains ambiguities or context-specific
nuances then output the words "%s" followed by a clear and concise explanation of the problem
and stop.

Otherwise, provide an improved version of the text, using the Relevant language rules, explaining
the changes made and offering additional suggestions for improvement.

Focus on producing Standard English, including vocabulary and natural phrasing.

Do not change the meaning of the text.

Improved text:
`, text, joinRules(rules), AmbiguousMarker)
}

// GrammarCorrection builds the prompt for the grammar-only pass. It instructs
// the model to leave style and spelling alone unless a cited rule demands a
// change.
func GrammarCorrection(text string, rules []string) string {
	return fmt.Sprintf(`Role: You are an expert in English syntax, morphology and semantics but know
nothing else about the English language.

Fix any syntax, morphology or semantics errors in the following text:

Original: %s

Relevant language rules:
%s

Instructions:

First, decide if the meaning of the text is clear. If it contains ambiguities or context-specific
nuances then output the words "%s" followed by a clear and concise explanation of the problem
and stop.

Do not change the meaning or style of the text.

Do not change the spelling of any words unless it is necessary to comply with the Relevant
language rules.

Focus only on the syntax, morphology and semantics of the text.

Corrected text:
`, text, joinRules(rules), AmbiguousMarker)
}

// StandardEnglish builds the prompt for the chained pass. It carries both the
// original text and the already-grammar-corrected intermediate as separate
// labeled fields.
func StandardEnglish(original, corrected string) string {
	return fmt.Sprintf(`Role: You are an expert in written Standard English.

Context: Correct the following text:

Original: %s
Grammatically corrected: %s

Instructions:

Think step by step.

First, decide if the meaning of the text is clear. If it contains ambiguities or context-specific
nuances then output the words "%s" followed by a clear and concise explanation of the problem
and stop.

Otherwise, provide an improved version of the text, using standard English, explaining the changes
made and offering additional suggestions for improvement. Focus on producing Standard English,
including vocabulary and natural phrasing. Do not change the meaning of the text.

Improved text:
`, original, corrected, AmbiguousMarker)
}

func joinRules(rules []string) string {
	return strings.Join(rules, " ")
}
