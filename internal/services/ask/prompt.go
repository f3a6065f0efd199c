package ask

import "fmt"

// systemPrompt frames every completion request. It applies to both grounded
// and ungrounded questions.
const systemPrompt = "You are a helpful assistant for an online course platform. Answer the user's question clearly and concisely."

// buildAugmentedPrompt prepends retrieved course material to the user's
// question. The document text is included verbatim; delimiters keep the
// context and the question unambiguous for the model.
func buildAugmentedPrompt(contextText, question string) string {
	return fmt.Sprintf(`Use the following course material to answer the question. If the material does not contain the answer, say so.

--- COURSE MATERIAL ---
%s
--- END COURSE MATERIAL ---

Question: %s`, contextText, question)
}
